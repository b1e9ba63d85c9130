package textutil

import (
	"regexp"
	"strings"
)

var (
	// controlChars matches ASCII control characters that show up as PDF
	// extraction artifacts. Tab, LF and CR are kept.
	controlChars = regexp.MustCompile(`[\x00-\x08\x0b-\x0c\x0e-\x1f]`)

	// inlineSpace matches runs of spaces and tabs within a line.
	inlineSpace = regexp.MustCompile(`[ \t]+`)

	// blankRun matches a run of two or more newlines (with optional
	// intervening horizontal whitespace).
	blankRun = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)

	// anySpace matches one or more whitespace characters of any kind.
	anySpace = regexp.MustCompile(`\s+`)

	// sentenceEnd matches sentence terminators followed by whitespace.
	// No abbreviation or decimal awareness: "e.g." and "3.5 mm" over-split.
	sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)
)

// Clean normalizes raw extracted text: control characters stripped, runs of
// spaces and tabs collapsed to a single space, blank-line runs collapsed to
// exactly one blank line, ends trimmed. Idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = controlChars.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = inlineSpace.ReplaceAllString(text, " ")
	text = blankRun.ReplaceAllString(text, "\n\n")

	// Trim trailing spaces left on each line after collapsing
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")
	text = blankRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// Paragraphs splits text on blank-line boundaries. Each paragraph is cleaned;
// empty paragraphs are dropped.
func Paragraphs(text string) []string {
	parts := regexp.MustCompile(`\n\s*\n`).Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if cleaned := Clean(p); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// Sentences splits text on sentence terminators followed by whitespace.
// Results are cleaned and empties dropped.
func Sentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if cleaned := Clean(s); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// NormalizeSpace lowercases, trims, and collapses all internal whitespace to
// single spaces. Used as the dedup key for extracted records.
func NormalizeSpace(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return anySpace.ReplaceAllString(s, " ")
}
