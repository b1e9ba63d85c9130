// Package pipeline orchestrates the per-document extraction flow: normalize
// text, locate the specification section, extract specification records and
// important info, optionally refine via the LLM backend, and resolve the
// tender identifier. Each document is processed independently; a failure in
// one never aborts the rest of a batch.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"tenderscan/internal/config"
	"tenderscan/internal/errors"
	"tenderscan/internal/extract"
	"tenderscan/internal/llm"
	"tenderscan/internal/source"
	"tenderscan/internal/tender"
	"tenderscan/internal/tenderid"
	"tenderscan/internal/textutil"
)

// Document is one unit of pipeline input: the main text plus any
// already-resolved linked documents.
type Document struct {
	Filename string
	Text     string
	Linked   []source.Document
}

// Output is the full result of processing one document. Tender is the
// persisted record; Info and Specs carry the raw extraction detail for
// callers that want more than the record fields.
type Output struct {
	Tender tender.Tender  `json:"tender"`
	Info   extract.Info   `json:"important_info"`
	Specs  extract.Result `json:"specs"`
}

// Outcome pairs a batch item with its result or error.
type Outcome struct {
	Name   string
	Output *Output
	Err    error
}

// Processor runs the extraction flow.
type Processor struct {
	cfg      *config.Config
	llm      *llm.Client
	resolver *tenderid.Resolver
	log      *slog.Logger
}

// New creates a Processor. The llm client may be disabled; all LLM paths
// degrade to the rule-based results.
func New(cfg *config.Config, llmClient *llm.Client, resolver *tenderid.Resolver, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{cfg: cfg, llm: llmClient, resolver: resolver, log: log}
}

// NewRunID returns a fresh ULID identifying one pipeline run.
func NewRunID() string {
	return ulid.Make().String()
}

// Process runs the full flow for one document.
func (p *Processor) Process(ctx context.Context, doc Document, runID string) (*Output, error) {
	text := textutil.Clean(doc.Text)
	if text == "" {
		return nil, errors.NewEmptyDocument(doc.Filename)
	}

	// Linked documents contribute to info extraction and ID resolution as
	// appended text, and to spec extraction as separately-extracted records.
	combined := text
	for _, linked := range doc.Linked {
		if cleaned := textutil.Clean(linked.Text); cleaned != "" {
			combined += "\n\n" + cleaned
		}
	}

	specs := p.extractSpecs(text, doc.Linked)
	info := extract.ExtractInfo(combined)

	p.refineWithLLM(ctx, combined, &specs, &info)

	id, err := p.resolver.Resolve(doc.Filename, combined)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Tender: tender.Tender{
			TenderID:         id,
			SourceFile:       doc.Filename,
			ProjectName:      info.ProjectName,
			Ministry:         info.Ministry,
			DeliveryDeadline: firstNonEmpty(info.Delivery, info.Deadline),
			Warranty:         info.Warranty,
			Voltage:          info.Voltage,
			Quantities:       info.Quantities,
			Standards:        info.Standards,
			ItemDescriptions: info.ItemDescriptions,
			TechnicalSpecs:   truncate(specs.Formatted, p.cfg.SpecsMaxChars),
			SpecCount:        specs.Count,
			RunID:            runID,
		},
		Info:  info,
		Specs: specs,
	}

	p.log.Info("document processed",
		"file", doc.Filename,
		"tender_id", id,
		"specs", specs.Count,
		"linked", len(doc.Linked),
		"run_id", runID,
	)
	return out, nil
}

// extractSpecs locates and extracts from the main document, then merges
// linked-document records. Main records come first; when the main document
// yields none, linked records substitute entirely. The bulleted fallback is
// the last resort when no section is locatable anywhere.
func (p *Processor) extractSpecs(text string, linked []source.Document) extract.Result {
	maxLines := p.cfg.SectionMaxLines
	if maxLines <= 0 {
		maxLines = extract.MaxSectionLines
	}

	results := []extract.Result{extract.ExtractSpecs(extract.LocateSectionN(text, maxLines))}
	for _, l := range linked {
		cleaned := textutil.Clean(l.Text)
		if cleaned == "" {
			continue
		}
		r := extract.ExtractSpecs(extract.LocateSectionN(cleaned, maxLines))
		if r.Count > 0 {
			results = append(results, r)
		}
	}

	merged := extract.Combine(results...)
	if merged.Count > 0 {
		return merged
	}
	return extract.ExtractFallback(text)
}

// refineWithLLM merges the optional LLM pass into the rule results. Rule
// output always wins when present; the backend only fills gaps. Formatting of
// found specs is the one place LLM output replaces rule output, since it is
// a restatement of the same records.
func (p *Processor) refineWithLLM(ctx context.Context, text string, specs *extract.Result, info *extract.Info) {
	if p.llm == nil || !p.llm.Enabled() {
		return
	}

	structured, status := p.llm.ExtractStructuredInfo(ctx, text)
	switch status {
	case llm.StatusOK:
		if info.ProjectName == "" {
			info.ProjectName = structured.ProjectName
		}
		if info.Ministry == "" {
			info.Ministry = structured.Ministry
		}
		if info.Delivery == "" && info.Deadline == "" {
			info.Delivery = structured.Delivery
		}
		if specs.Count == 0 && structured.TechnicalSpecs != "" {
			specs.Formatted = structured.TechnicalSpecs
		}
	case llm.StatusUnavailable:
		p.log.Warn("llm refinement unavailable, keeping rule results")
	}

	if specs.Count > 0 {
		raw := make([]string, len(specs.Records))
		for i, r := range specs.Records {
			raw[i] = r.String()
		}
		if formatted, status := p.llm.FormatSpecs(ctx, raw); status == llm.StatusOK {
			specs.Formatted = formatted
		}
	}
}

// ProcessBatch runs every document through Process under one run ID,
// collecting per-document outcomes. Errors are recorded, never propagated
// across documents.
func (p *Processor) ProcessBatch(ctx context.Context, docs []Document) (string, []Outcome) {
	runID := NewRunID()
	outcomes := make([]Outcome, 0, len(docs))

	for _, doc := range docs {
		out, err := p.Process(ctx, doc, runID)
		if err != nil {
			p.log.Error("document failed", "file", doc.Filename, "error", err)
		}
		outcomes = append(outcomes, Outcome{Name: doc.Filename, Output: out, Err: err})
	}
	return runID, outcomes
}

// truncate caps s at max runes, appending an ellipsis marker on truncation.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
