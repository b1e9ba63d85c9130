package extract

import (
	"regexp"
	"strings"

	"tenderscan/internal/textutil"
)

// MaxSpecValueChars drops specification values at or beyond this length.
const MaxSpecValueChars = 200

// maxGenericValueChars bounds values accepted by the generic key-value scan.
const maxGenericValueChars = 150

// maxLabeledLineChars is the longest line the labeled-table walk will treat
// as a single table row.
const maxLabeledLineChars = 150

// SpecRecord is a single extracted "key: value" specification.
type SpecRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String renders the record in its canonical "Key: Value" form.
func (r SpecRecord) String() string {
	return r.Key + ": " + r.Value
}

// Result is the outcome of a specification extraction. Extraction never
// fails: an unlocatable section yields Count == 0 with empty fields.
type Result struct {
	Records   []SpecRecord `json:"raw_specs"`
	Formatted string       `json:"formatted_specs"`
	Count     int          `json:"count"`
}

// categoryHeaders are the known table category tokens. A line consisting of
// one of these switches the "current category" during the labeled-table walk.
var categoryHeaders = []string{
	"STANDARDS",
	"GENERIC",
	"CONSTRUCTION",
	"ARMOURING",
	"IDENTIFICATION",
	"PACKING",
	"OPERATION",
}

// knownFields are the curated specification field names recognized by the
// labeled-table and concatenated-table strategies, in emission order.
var knownFields = []string{
	"Nominal Area Of Conductor",
	"Material Of Conductor",
	"Conductor Material",
	"Number Of Cores",
	"Material Of Insulation",
	"Type Of Insulation",
	"Material Of Armouring",
	"Type Of Outer Sheath",
	"Material Of Sheath",
	"Colour Of Sheath",
	"Voltage Grade",
	"Rated Voltage",
	"Standard",
	"Total Quantity",
}

// fieldPatterns maps each known field to a case-insensitive regex matching its
// label in running text.
var fieldPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(knownFields))
	for _, f := range knownFields {
		escaped := strings.ReplaceAll(regexp.QuoteMeta(strings.ToLower(f)), " ", `\s+`)
		m[f] = regexp.MustCompile(`(?i)\b` + escaped + `\b`)
	}
	return m
}()

// Value-shape patterns tried against the remainder of a field line, most
// specific first.
var valueShapes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:sq\.?\s*mm|sqmm|mm|kv|v|km|amps?|a|deg\s*c|%|nos\.?|meters?|metres?|m)\b`),
	regexp.MustCompile(`(?i)\b(?:yes|no)\b`),
	regexp.MustCompile(`(?i)\bas\s+per\s+[A-Za-z0-9 /\-.]+`),
	regexp.MustCompile(`\b[A-Z][A-Za-z0-9/\-]*(?:\s+[A-Z0-9][A-Za-z0-9/\-]*)*\b`),
	regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),
}

// concatAnchor locates the start of a run-on rendered table: a table header
// phrase eventually followed by a category token on the same line.
var concatAnchor = regexp.MustCompile(`(?i)(?:specification\s+name|bid\s+requirement|allowed\s+values)[\s\S]{0,200}?(?:STANDARDS|GENERIC|CONSTRUCTION)`)

// concatFieldShape pairs a known field with the value shape expected to
// directly follow its label in a run-on table.
type concatFieldShape struct {
	field string
	shape *regexp.Regexp
}

// concatFields is the fixed dictionary probed by the concatenated-table
// strategy, in emission order.
var concatFields = []concatFieldShape{
	{"Nominal Area Of Conductor", regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*(?:sq\.?\s*mm|sqmm)`)},
	{"Material Of Conductor", regexp.MustCompile(`(?i)^(?:aluminium|aluminum|copper)`)},
	{"Conductor Material", regexp.MustCompile(`(?i)^(?:aluminium|aluminum|copper)`)},
	{"Number Of Cores", regexp.MustCompile(`^\d+(?:\.\d+)?`)},
	{"Material Of Insulation", regexp.MustCompile(`(?i)^(?:XLPE|PVC|EPR|rubber)`)},
	{"Type Of Insulation", regexp.MustCompile(`(?i)^(?:XLPE|PVC|EPR|rubber)`)},
	{"Material Of Armouring", regexp.MustCompile(`(?i)^(?:galvani[sz]ed\s+)?(?:steel|aluminium)(?:\s+(?:wire|strip))?`)},
	{"Type Of Outer Sheath", regexp.MustCompile(`(?i)^(?:PVC|HDPE|LDPE|CSP)(?:\s+ST-?\d)?`)},
	{"Material Of Sheath", regexp.MustCompile(`(?i)^(?:PVC|HDPE|LDPE|CSP)(?:\s+ST-?\d)?`)},
	{"Colour Of Sheath", regexp.MustCompile(`(?i)^(?:black|red|grey|gray|blue|yellow)`)},
	{"Voltage Grade", regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*k?V\b`)},
	{"Rated Voltage", regexp.MustCompile(`(?i)^\d+(?:\.\d+)?\s*k?V\b`)},
	{"Standard", regexp.MustCompile(`(?i)^(?:IS|IEC|IEEE|BS|ASTM|ISO)\s*\d+(?:[/-]\d+)*`)},
	{"Total Quantity", regexp.MustCompile(`(?i)^\d+(?:[.,]\d+)?\s*(?:meters?|metres?|km|nos\.?|pieces?|units?)`)},
}

// genericExcludeKeywords knock administrative lines out of the generic
// key-value scan.
var genericExcludeKeywords = []string{
	"delivery",
	"warranty",
	"guarantee",
	"payment",
	"penalty",
	"bid submission",
	"submission date",
	"closing date",
	"emd",
	"tender fee",
	"evaluation",
}

// genericSpecKeywords qualify a key as product-specification language for the
// generic key-value scan.
var genericSpecKeywords = []string{
	"conductor", "insulation", "sheath", "armour", "core", "cable",
	"voltage", "grade", "standard", "material", "size", "area",
	"quantity", "specification", "type", "rating", "temperature",
	"colour", "color", "length", "drum", "packing", "marking",
}

// bulletPrefix strips leading bullet markers from extracted lines.
var bulletPrefix = regexp.MustCompile(`^[\s\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}*\-+>]+`)

// itemCategoryPattern extracts item/product category declarations anywhere in
// the section. The Devanagari alternative covers bilingual GeM documents.
var itemCategoryPattern = regexp.MustCompile(`(?i)(?:item\s+category|product\s+category|item\s+description|वस्तु\s*श्रेणी)\s*[:\-]\s*(\S[^\n|]*)`)

// ExtractSpecs runs the three extraction strategies over a located section and
// merges their candidates into deduplicated records.
func ExtractSpecs(section []string) Result {
	if len(section) == 0 {
		return Result{Records: []SpecRecord{}, Formatted: "", Count: 0}
	}

	var candidates []SpecRecord
	candidates = append(candidates, labeledTableRecords(section)...)
	candidates = append(candidates, concatenatedTableRecords(section)...)
	candidates = append(candidates, genericKeyValueRecords(section)...)
	candidates = append(candidates, itemCategoryRecords(section)...)

	records := mergeRecords(candidates)
	return Result{
		Records:   records,
		Formatted: formatRecords(records),
		Count:     len(records),
	}
}

// Combine concatenates extraction results in order and reapplies the global
// dedup and formatting. Used when a main document's records are extended with
// records from linked documents.
func Combine(results ...Result) Result {
	var candidates []SpecRecord
	for _, r := range results {
		candidates = append(candidates, r.Records...)
	}

	records := mergeRecords(candidates)
	return Result{
		Records:   records,
		Formatted: formatRecords(records),
		Count:     len(records),
	}
}

// ExtractFallback classifies individual paragraphs and sentences as
// specification content when no section could be located at all. Output uses
// the bulleted fallback format, distinct from the concise vertical form.
func ExtractFallback(text string) Result {
	var specs []string
	seen := make(map[string]bool)

	for _, chunk := range append(textutil.Paragraphs(text), textutil.Sentences(text)...) {
		if !isSpecLine(chunk) {
			continue
		}
		key := textutil.NormalizeSpace(chunk)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		specs = append(specs, chunk)
	}

	if len(specs) == 0 {
		return Result{Records: []SpecRecord{}, Formatted: "", Count: 0}
	}

	records := make([]SpecRecord, 0, len(specs))
	var b strings.Builder
	for i, s := range specs {
		records = append(records, SpecRecord{Key: "Specification", Value: s})
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + s)
	}
	return Result{Records: records, Formatted: b.String(), Count: len(records)}
}

// isSpecLine is the legacy line classifier: technical keyword presence, or a
// standard reference combined with technical phrasing.
func isSpecLine(text string) bool {
	lower := strings.ToLower(text)

	keywordHit := false
	for _, kw := range genericSpecKeywords {
		if strings.Contains(lower, kw) {
			keywordHit = true
			break
		}
	}

	hasStandard := standardRef.MatchString(text)
	hasTechnicalTerm := false
	for _, term := range []string{"conductor", "insulation", "sheath", "voltage", "grade", "specification", "compliance", "conforms", "as per"} {
		if strings.Contains(lower, term) {
			hasTechnicalTerm = true
			break
		}
	}

	return keywordHit || (hasStandard && hasTechnicalTerm)
}

// labeledTableRecords walks a rendered labeled table: find the header row (or
// a bare category header), then pair known field labels with values found on
// the same line or within the next two lines.
func labeledTableRecords(section []string) []SpecRecord {
	start := -1
	for i, line := range section {
		if isHeaderRow(line) || isCategoryHeader(line) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	var records []SpecRecord
	category := ""

	for i := start; i < len(section); i++ {
		line := section[i]

		if cat, ok := categoryToken(line); ok {
			category = cat
			continue
		}

		// Run-on lines are a whole table rendered as one string; the
		// concatenated-table strategy owns those.
		if len(line) > maxLabeledLineChars {
			continue
		}

		field, pos := matchKnownField(line)
		if field == "" {
			continue
		}

		value := findValueShape(line[pos:])
		if value == "" {
			// Scan the next 1-2 lines for a plausible value line: not a
			// category header and not another field label.
			for j := i + 1; j <= i+2 && j < len(section); j++ {
				next := section[j]
				if _, ok := categoryToken(next); ok {
					break
				}
				if f, _ := matchKnownField(next); f != "" {
					break
				}
				if v := findValueShape(next); v != "" {
					value = v
					break
				}
			}
		}

		if value == "" {
			continue
		}

		key := field
		if category != "" {
			key = category + " " + field
		}
		records = append(records, SpecRecord{Key: key, Value: value})
	}

	return records
}

// concatenatedTableRecords handles documents whose whole table renders as one
// run-on line: anchor on a table header phrase, then probe the substring for
// each known field immediately followed by a value shape.
func concatenatedTableRecords(section []string) []SpecRecord {
	joined := strings.Join(section, " ")

	loc := concatAnchor.FindStringIndex(joined)
	if loc == nil {
		return nil
	}
	window := joined[loc[0]:]

	var records []SpecRecord
	haveQuantity := false

	for _, entry := range concatFields {
		m := fieldPatterns[entry.field].FindStringIndex(window)
		if m == nil {
			continue
		}
		// Value must follow the label directly (allowing separators).
		rest := strings.TrimLeft(window[m[1]:], " :|-\t")
		value := entry.shape.FindString(rest)
		if value == "" {
			continue
		}
		records = append(records, SpecRecord{Key: entry.field, Value: strings.TrimSpace(value)})
		if entry.field == "Total Quantity" {
			haveQuantity = true
		}
	}

	if len(records) > 0 && !haveQuantity {
		// Explicit documented fallback: quantity is always reported, even
		// when the run-on table omits it.
		records = append(records, SpecRecord{Key: "Total Quantity", Value: "As per BOQ"})
	}

	return records
}

// genericKeyValueRecords scans every section line for key/value structure
// outside the recognized tables.
func genericKeyValueRecords(section []string) []SpecRecord {
	var records []SpecRecord

	for i, line := range section {
		if isGenericExcluded(line) || isTableSeparator(line) || isShortCapsHeader(line) {
			continue
		}

		if idx := strings.Index(line, ":"); idx > 0 {
			key := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])
			if key == "" || value == "" || len(value) >= maxGenericValueChars {
				continue
			}
			if hasGenericSpecKeyword(key) {
				records = append(records, SpecRecord{Key: key, Value: value})
			}
			continue
		}

		// No colon: a spec-keyword line takes the next non-excluded line
		// as its value.
		if hasGenericSpecKeyword(line) && i+1 < len(section) {
			next := strings.TrimSpace(section[i+1])
			if next == "" || isGenericExcluded(next) || isTableSeparator(next) || strings.Contains(next, ":") {
				continue
			}
			if len(next) < maxGenericValueChars {
				records = append(records, SpecRecord{Key: strings.TrimSpace(line), Value: next})
			}
		}
	}

	return records
}

// itemCategoryRecords runs the item-category pass over the whole section,
// independent of the table strategies.
func itemCategoryRecords(section []string) []SpecRecord {
	joined := strings.Join(section, "\n")

	var records []SpecRecord
	for _, m := range itemCategoryPattern.FindAllStringSubmatch(joined, -1) {
		value := strings.TrimSpace(m[1])
		if value != "" {
			records = append(records, SpecRecord{Key: "Item Category", Value: value})
		}
	}
	return records
}

// mergeRecords applies the SpecRecord invariants: bullet markers stripped,
// whitespace normalized, oversized values dropped, global case-insensitive
// dedup with first occurrence winning.
func mergeRecords(candidates []SpecRecord) []SpecRecord {
	seen := make(map[string]bool)
	records := make([]SpecRecord, 0, len(candidates))

	for _, c := range candidates {
		key := tidyField(c.Key)
		value := tidyField(c.Value)
		if key == "" || value == "" || len(value) >= MaxSpecValueChars {
			continue
		}

		dedupKey := textutil.NormalizeSpace(key + ": " + value)
		if seen[dedupKey] {
			continue
		}
		seen[dedupKey] = true
		records = append(records, SpecRecord{Key: key, Value: value})
	}

	return records
}

// formatRecords renders records one per line in the concise vertical format.
func formatRecords(records []SpecRecord) string {
	if len(records) == 0 {
		return ""
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// tidyField strips bullet markers and collapses whitespace, preserving case.
func tidyField(s string) string {
	s = bulletPrefix.ReplaceAllString(s, "")
	s = inlineWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var inlineWhitespace = regexp.MustCompile(`\s+`)

// isCategoryHeader reports whether line is exactly a known category token.
func isCategoryHeader(line string) bool {
	_, ok := categoryToken(line)
	return ok
}

// categoryToken returns the category name when line consists of a known
// category header token (ignoring table chrome around it).
func categoryToken(line string) (string, bool) {
	stripped := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "|-_ "))
	upper := strings.ToUpper(stripped)
	for _, cat := range categoryHeaders {
		if upper == cat {
			return cat, true
		}
	}
	return "", false
}

// matchKnownField returns the first known field label found in line and the
// byte offset just past the match.
func matchKnownField(line string) (string, int) {
	for _, field := range knownFields {
		if m := fieldPatterns[field].FindStringIndex(line); m != nil {
			return field, m[1]
		}
	}
	return "", 0
}

// findValueShape returns the first value-shape match anywhere in s.
func findValueShape(s string) string {
	s = strings.TrimLeft(s, " :|-\t")
	for _, shape := range valueShapes {
		if m := shape.FindString(s); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// isGenericExcluded reports whether line carries administrative language the
// generic scan must skip.
func isGenericExcluded(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range genericExcludeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isShortCapsHeader reports whether line is a short all-caps heading.
func isShortCapsHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 30 {
		return false
	}
	hasLetter := false
	for _, r := range trimmed {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// hasGenericSpecKeyword reports whether s contains broad product-spec
// vocabulary.
func hasGenericSpecKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range genericSpecKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
