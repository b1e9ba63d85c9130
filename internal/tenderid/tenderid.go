// Package tenderid resolves a canonical tender identifier for a document via
// a priority-ordered cascade of pattern families, falling back to a
// persistent sequential generator.
package tenderid

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultPrefix and DefaultYear shape generated identifiers.
const (
	DefaultPrefix = "TDR"
	DefaultYear   = 2025
)

// minIDLength gates identifiers captured from body text.
const minIDLength = 4

// transientPrefixes disqualify a filename stem from being used as the ID.
var transientPrefixes = []string{"temp_", "downloaded_", "attachment_"}

// filenameStem accepts only clean token-shaped stems.
var filenameStem = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// Strategy is one named stage of the resolution cascade: a pure function
// from body text to an optional identifier.
type Strategy struct {
	Name  string
	Match func(text string) (string, bool)
}

// Pattern families per stage. Within a stage the first regex that matches
// wins, and within a regex the first match in the text wins. The stage order
// is a precision-over-recall choice: an explicit RFP reference beats any
// generic-looking token elsewhere in the document.
var (
	rfpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:rfp|request\s+for\s+proposal)\s*(?:no|number|id|ref(?:erence)?)?\.?\s*[:#]?\s+([A-Za-z][A-Za-z0-9\-/]+)`),
		regexp.MustCompile(`(?i)(?:rfq|request\s+for\s+quotation)\s*(?:no|number|id|ref(?:erence)?)?\.?\s*[:#]?\s+([A-Za-z][A-Za-z0-9\-/]+)`),
		regexp.MustCompile(`(?i)\b(RF[PQ][-/]\d{4}[-/]\d{3,6})\b`),
	}

	tenderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tender\s+(?:no|number|id|reference)\.?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-/]+)`),
		regexp.MustCompile(`(?i)\b(TENDER[-/]\d{4}[-/]\d{3,6})\b`),
	}

	bidPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bid\s+(?:no|number|id)\.?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-/]+)`),
		regexp.MustCompile(`(?i)\b(BID[-/]\d{4}[-/]\d{3,6})\b`),
	}

	gemPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(GEM/\d{4}/[A-Z]/\d{3,7})\b`),
	}

	genericPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b([A-Z]{2,10}[-/]\d{4}[-/]\d{3,6})\b`),
	}
)

// textStrategies is the body-text portion of the cascade, in priority order.
var textStrategies = []Strategy{
	{Name: "rfp", Match: matcherFor(rfpPatterns)},
	{Name: "tender-number", Match: matcherFor(tenderPatterns)},
	{Name: "bid-number", Match: matcherFor(bidPatterns)},
	{Name: "marketplace", Match: matcherFor(gemPatterns)},
	{Name: "generic", Match: matcherFor(genericPatterns)},
}

// matcherFor builds a stage matcher over an ordered pattern family.
func matcherFor(patterns []*regexp.Regexp) func(string) (string, bool) {
	return func(text string) (string, bool) {
		for _, p := range patterns {
			m := p.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			id := trimFencing(m[len(m)-1])
			if len(id) >= minIDLength {
				return strings.ToUpper(id), true
			}
		}
		return "", false
	}
}

// trimFencing strips stray whitespace and punctuation from the edges of a
// captured identifier.
func trimFencing(s string) string {
	return strings.Trim(s, " \t.,;:#()[]\"'-/")
}

// FromFilename derives an identifier from a source filename. The stem is used
// verbatim (case preserved) when it is token-shaped, longer than five
// characters, and not a transient download name.
func FromFilename(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if len(stem) <= 5 || !filenameStem.MatchString(stem) {
		return "", false
	}
	lower := strings.ToLower(stem)
	for _, prefix := range transientPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}
	return stem, true
}

// FromText runs the text cascade and returns the first stage's hit.
func FromText(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, s := range textStrategies {
		if id, ok := s.Match(text); ok {
			return id, true
		}
	}
	return "", false
}

// Resolver combines the extraction cascade with a sequence-backed generator.
type Resolver struct {
	prefix string
	year   int
	seq    Sequence
}

// NewResolver creates a Resolver. Zero prefix/year fall back to the defaults.
func NewResolver(prefix string, year int, seq Sequence) *Resolver {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if year == 0 {
		year = DefaultYear
	}
	return &Resolver{prefix: prefix, year: year, seq: seq}
}

// Resolve returns the document's tender identifier: filename first, then the
// body-text cascade, then a generated value.
func (r *Resolver) Resolve(filename, text string) (string, error) {
	if id, ok := FromFilename(filename); ok {
		return id, nil
	}
	if id, ok := FromText(text); ok {
		return id, nil
	}
	return r.Generate()
}

// Generate synthesizes a new sequential identifier.
func (r *Resolver) Generate() (string, error) {
	n, err := r.seq.Next()
	if err != nil {
		return "", fmt.Errorf("next sequence value: %w", err)
	}
	return fmt.Sprintf("%s-%d-%04d", r.prefix, r.year, n), nil
}
