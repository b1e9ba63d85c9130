// Package extract implements the document information-extraction pipeline:
// section location, specification records, and important-info fields.
package extract

import (
	"regexp"
	"strings"
)

// MaxSectionLines caps how many lines a located section may collect before the
// scan is forced to terminate, end trigger or not.
const MaxSectionLines = 200

// sectionHeaderPatterns mark the start of a technical-specification or ATC
// section. Matching is case-insensitive and positional anywhere in the line;
// source documents carry no structural markup, so boundary detection is
// necessarily heuristic.
var sectionHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)technical\s+specifications?`),
	regexp.MustCompile(`(?i)tech\.?\s+specs?`),
	regexp.MustCompile(`(?i)technical\s+requirements?`),
	regexp.MustCompile(`(?i)product\s+specifications?`),
	regexp.MustCompile(`(?i)item\s+specifications?`),
	regexp.MustCompile(`(?i)^\s*specifications?\s*:?\s*$`),
	regexp.MustCompile(`(?i)additional\s+terms\s*(?:&|and)\s*conditions`),
	regexp.MustCompile(`(?i)^\s*atc\b`),
}

// endKeywords signal administrative boilerplate that commonly follows the
// specification section in the same document. A line matching one of these
// closes the section unless it also carries a product-spec indicator.
var endKeywords = []string{
	"terms and conditions",
	"terms & conditions",
	"payment terms",
	"payment within",
	"delivery schedule",
	"delivery period",
	"delivery terms",
	"warranty",
	"guarantee period",
	"evaluation",
	"bid submission",
	"submission of bid",
	"annexure",
	"appendix",
	"bill of quantities",
	"boq",
	"eligibility",
	"penalty",
	"liquidated damages",
}

// specIndicators mark a line as clearly still product-specification content,
// overriding an end-keyword co-occurrence.
var specIndicators = []string{
	"category",
	"conductor",
	"insulation",
	"sheath",
	"armouring",
	"voltage",
	"cable",
	"core",
	"grade",
	"standard",
	"specification name",
	"allowed values",
	"bid requirement",
	"as per",
	"conforms",
}

// standardRef matches references like "IS 7098" or "IEC60502" that also count
// as product-spec indicators.
var standardRef = regexp.MustCompile(`(?i)\b(?:IS|IEC|IEEE|BS|ASTM|ISO)\s*\d+`)

// headerRowTerms identify the header row of a rendered specification table.
var headerRowTerms = []string{
	"specification name",
	"allowed values",
	"bid requirement",
}

// tableSeparator matches lines that are pure table chrome.
var tableSeparator = regexp.MustCompile(`^[\s|\-_+=]*$`)

// LocateSection scans text line by line and returns the contiguous run of
// lines plausibly belonging to a technical-specification or ATC section. The
// result is empty when no header line is found; callers must treat that as
// "no technical specification present", not as an error.
func LocateSection(text string) []string {
	return LocateSectionN(text, MaxSectionLines)
}

// LocateSectionN is LocateSection with a caller-supplied line cap.
func LocateSectionN(text string, maxLines int) []string {
	if text == "" {
		return nil
	}
	if maxLines <= 0 {
		maxLines = MaxSectionLines
	}

	lines := strings.Split(text, "\n")
	var section []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inSection {
			if matchesSectionHeader(trimmed) {
				inSection = true
				section = append(section, trimmed)
			}
			continue
		}

		if hasEndKeyword(trimmed) && !hasSpecIndicator(trimmed) {
			break
		}

		if includeInSection(trimmed) {
			section = append(section, trimmed)
		}

		if len(section) >= maxLines {
			break
		}
	}

	return section
}

// matchesSectionHeader reports whether line opens a specification section.
func matchesSectionHeader(line string) bool {
	if line == "" {
		return false
	}
	for _, p := range sectionHeaderPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// hasEndKeyword reports whether line contains an end-of-section trigger.
func hasEndKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range endKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// hasSpecIndicator reports whether line contains product-specification
// language strong enough to keep the scan open past an end keyword.
func hasSpecIndicator(line string) bool {
	lower := strings.ToLower(line)
	for _, ind := range specIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return standardRef.MatchString(line)
}

// isTableSeparator reports whether line is bare table chrome: only pipes,
// dashes, underscores, or too short to carry content.
func isTableSeparator(line string) bool {
	if len(line) < 3 {
		return true
	}
	return tableSeparator.MatchString(line)
}

// isHeaderRow reports whether line is a specification table header row.
func isHeaderRow(line string) bool {
	lower := strings.ToLower(line)
	for _, term := range headerRowTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// includeInSection is the per-line inclusion test applied while in-section.
func includeInSection(line string) bool {
	if isTableSeparator(line) {
		return true
	}
	if hasSpecIndicator(line) {
		return true
	}
	if isHeaderRow(line) {
		return true
	}
	if strings.Contains(line, ":") {
		return true
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "item category") || strings.Contains(lower, "product category")
}
