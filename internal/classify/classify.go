// Package classify makes the binary tender/non-tender decision for inbound
// documents from subject, body, sender, and attachment signals.
package classify

import (
	"regexp"
	"strings"
)

// subjectKeywords accept a message outright when any appears in the subject.
// Subject is the highest-signal field, so this is the most lenient gate.
var subjectKeywords = []string{
	"tender",
	"rfp",
	"rfq",
	"bid",
	"bidding",
	"request for proposal",
	"request for quotation",
	"procurement",
	"invitation to tender",
	"invitation to bid",
	"expression of interest",
	"bill of quantities",
	"boq",
}

// excludePhrases mark newsletter/verification/marketing traffic. They only
// disqualify when found in the body; the subject always overrides.
var excludePhrases = []string{
	"unsubscribe",
	"newsletter",
	"verify your email",
	"verification code",
	"confirm your subscription",
	"special offer",
	"limited time offer",
	"view this email in your browser",
}

// bodyKeywords are weaker evidence; two or more must co-occur in the body.
var bodyKeywords = []string{
	"tender", "bid", "bidding", "rfq", "rfp", "request for quotation",
	"request for proposal", "procurement", "supply", "delivery",
	"technical specification", "boq", "bill of quantities",
	"warranty", "delivery deadline", "submission date",
}

// strongKeywords is the narrower list consulted when a PDF attachment is
// present.
var strongKeywords = []string{
	"tender", "bid", "bidding", "rfq", "rfp",
	"procurement", "technical specification", "boq",
}

// subjectRefPatterns recognize a tender-reference-shaped subject line.
var subjectRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b[A-Z]{2,10}[-/]\d{4}[-/]\d{3,6}\b`),
	regexp.MustCompile(`(?i)\btender\s*[:#]\s*\S+`),
}

// IsTender classifies a message. The cascade is precision-oriented: each
// stage is strictly weaker evidence than the one before it.
func IsTender(subject, body, sender string, hasPDF bool) bool {
	subjectLower := strings.ToLower(subject)
	bodyLower := strings.ToLower(body)

	// Stage 1: subject keyword short-circuits every other check.
	for _, kw := range subjectKeywords {
		if strings.Contains(subjectLower, kw) {
			return true
		}
	}

	// Stage 2: body exclusion phrases, unless the same phrase also appears
	// in the subject.
	for _, phrase := range excludePhrases {
		if strings.Contains(bodyLower, phrase) && !strings.Contains(subjectLower, phrase) {
			return false
		}
	}

	// Stage 3: two or more body keywords.
	if countMatches(bodyLower, bodyKeywords) >= 2 {
		return true
	}

	// Stage 4: PDF attachment plus at least one strong keyword anywhere.
	if hasPDF {
		combined := subjectLower + " " + bodyLower
		if countMatches(combined, strongKeywords) >= 1 {
			return true
		}
	}

	// Stage 5: tender-reference-shaped subject.
	for _, p := range subjectRefPatterns {
		if p.MatchString(subject) {
			return true
		}
	}

	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// ClassifyText scores free-form text (message or extracted document body)
// without subject/attachment context, for callers holding only a blob.
func ClassifyText(text string) bool {
	lower := strings.ToLower(text)

	strong := countMatches(lower, strongKeywords)
	broad := countMatches(lower, bodyKeywords)

	switch {
	case strong >= 2:
		return true
	case broad >= 3:
		return true
	case strong >= 1 && broad >= 2:
		return true
	default:
		return false
	}
}
