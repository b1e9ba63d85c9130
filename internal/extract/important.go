package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Info is the fixed-shape record of important tender information. Every field
// is extracted independently; zero values mean "not found". Created fresh per
// document with no cross-document state.
type Info struct {
	Delivery         string   `json:"delivery,omitempty"`
	Deadline         string   `json:"deadline,omitempty"`
	Warranty         string   `json:"warranty,omitempty"`
	Quantities       []string `json:"quantities,omitempty"`
	Voltage          string   `json:"voltage,omitempty"`
	Standards        []string `json:"standards,omitempty"`
	ItemDescriptions []string `json:"item_descriptions,omitempty"`
	ProjectName      string   `json:"project_name,omitempty"`
	Ministry         string   `json:"ministry,omitempty"`
}

var deliveryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)delivery[:\s]+(\d+)\s*(?:days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)delivery[:\s]+within\s+(\d+)\s*(?:days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)delivery\s+period[:\s]+(\d+)\s*(?:days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)lead\s+time[:\s]+(\d+)\s*(?:days?|weeks?|months?)`),
}

var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:submission|closing|last)\s+date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)deadline[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)bid\s+submission[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(?:is\s+)?(?:the\s+)?(?:submission|closing|deadline)`),
}

var warrantyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)warranty[:\s]+(\d+)\s*(?:years?|months?|days?)`),
	regexp.MustCompile(`(?i)guarantee[:\s]+(\d+)\s*(?:years?|months?|days?)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:years?|months?|days?)\s+warranty`),
}

var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)quantity[:\s]+(\d+(?:[.,]\d+)?)\s*(?:meters?|metres?|pieces?|units?|nos?\.?)`),
	regexp.MustCompile(`(?i)qty[:\s]+(\d+(?:[.,]\d+)?)\s*(?:meters?|metres?|pieces?|units?|nos?\.?)`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:meters?|metres?|pieces?|units?|nos?\.?)\s+(?:of|quantity)`),
}

var voltagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*V\s*(?:grade|rating)`),
	regexp.MustCompile(`(?i)voltage[:\s]+(\d+)\s*V`),
	regexp.MustCompile(`(?i)(\d+)\s*V\s+voltage`),
	regexp.MustCompile(`(?i)voltage\s+grade[:\s]+(\d+)\s*V`),
}

var standardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:IS|IEC|IEEE|BS|ASTM|ISO)\s+\d+(?:[/-]\d+)*`),
	regexp.MustCompile(`(?i)as\s+per\s+(?:IS|IEC|IEEE|BS|ASTM|ISO)\s+\d+`),
	regexp.MustCompile(`(?i)conforms?\s+to\s+(?:IS|IEC|IEEE|BS|ASTM|ISO)\s+\d+`),
}

// standardCanonical extracts the bare body+number form from any standards
// phrasing, so "as per IS 7098" and "IS 7098" dedup to one entry.
var standardCanonical = regexp.MustCompile(`(?i)(IS|IEC|IEEE|BS|ASTM|ISO)\s+(\d+(?:[/-]\d+)*)`)

var projectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)project\s*(?:name|title)?\s*[:\-]\s*([^\n]{3,120})`),
	regexp.MustCompile(`(?i)name\s+of\s+(?:the\s+)?(?:work|project)\s*[:\-]\s*([^\n]{3,120})`),
	regexp.MustCompile(`(?i)tender\s+for\s+([^\n]{3,120})`),
}

var ministryPattern = regexp.MustCompile(`(?i)ministry\s+of\s+[A-Za-z][A-Za-z& ]{2,60}`)

// knownMinistries are checked as plain substring matches when no explicit
// "ministry of" phrasing appears.
var knownMinistries = []string{
	"Ministry of Power",
	"Ministry of Defence",
	"Ministry of Railways",
	"Ministry of Home Affairs",
	"Ministry of Road Transport and Highways",
	"Ministry of Petroleum and Natural Gas",
	"Ministry of Coal",
	"Ministry of Steel",
	"Ministry of Communications",
	"Ministry of Rural Development",
	"Ministry of New and Renewable Energy",
}

// itemDescriptionNouns flag a line as a plausible product description.
var itemDescriptionNouns = []string{
	"cable", "conductor", "insulation", "sheath", "wire",
	"item", "description", "material", "product",
}

// ExtractInfo runs every important-info extractor over the full document
// text. Never errors; missing fields stay zero-valued.
func ExtractInfo(text string) Info {
	return Info{
		Delivery:         firstMatch(text, deliveryPatterns),
		Deadline:         firstMatch(text, deadlinePatterns),
		Warranty:         firstMatch(text, warrantyPatterns),
		Quantities:       allMatches(text, quantityPatterns),
		Voltage:          firstMatch(text, voltagePatterns),
		Standards:        ExtractStandards(text),
		ItemDescriptions: extractItemDescriptions(text),
		ProjectName:      ExtractProjectName(text),
		Ministry:         ExtractMinistry(text),
	}
}

// firstMatch returns the full matched substring of the first pattern that
// hits, in pattern order. Callers needing the number must re-parse.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// allMatches returns every full match across all patterns, concatenated and
// not deduplicated.
func allMatches(text string, patterns []*regexp.Regexp) []string {
	var out []string
	for _, p := range patterns {
		out = append(out, p.FindAllString(text, -1)...)
	}
	return out
}

// ExtractStandards returns all referenced standards in canonical "BODY NNN"
// form, deduplicated. Set semantics: output is sorted, not insertion-ordered.
func ExtractStandards(text string) []string {
	seen := make(map[string]bool)
	for _, p := range standardPatterns {
		for _, m := range p.FindAllString(text, -1) {
			sub := standardCanonical.FindStringSubmatch(m)
			if sub == nil {
				continue
			}
			canonical := strings.ToUpper(sub[1]) + " " + sub[2]
			seen[canonical] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// extractItemDescriptions returns lines carrying product-description nouns,
// long enough to be prose and not an all-caps heading.
func extractItemDescriptions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 20 || line == strings.ToUpper(line) {
			continue
		}
		lower := strings.ToLower(line)
		for _, noun := range itemDescriptionNouns {
			if strings.Contains(lower, noun) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

// ExtractProjectName finds the project or work title: explicit labels first,
// then a heuristic scan over the first ten lines.
func ExtractProjectName(text string) string {
	for _, p := range projectPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(strings.Trim(m[1], " .,-"))
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 20 || len(line) > 120 {
			continue
		}
		lower := strings.ToLower(line)
		for _, hint := range []string{"supply", "procurement", "tender", "project", "work of"} {
			if strings.Contains(lower, hint) {
				return line
			}
		}
	}
	return ""
}

// ExtractMinistry finds the issuing ministry: explicit "ministry of X"
// phrasing first, then the fixed known-ministry list as plain substrings.
func ExtractMinistry(text string) string {
	if m := ministryPattern.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	for _, ministry := range knownMinistries {
		if strings.Contains(strings.ToLower(text), strings.ToLower(ministry)) {
			return ministry
		}
	}
	return ""
}
