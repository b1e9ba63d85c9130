package ops

import (
	"context"
	"database/sql"
	"log/slog"

	"tenderscan/internal/config"
	"tenderscan/internal/db"
	"tenderscan/internal/errors"
	"tenderscan/internal/llm"
	"tenderscan/internal/pipeline"
	"tenderscan/internal/source"
	"tenderscan/internal/store"
	"tenderscan/internal/tenderid"
)

// ProcessInput contains parameters for the Process operation.
type ProcessInput struct {
	// File restricts processing to one file in the drop directory.
	// Empty means the whole drop folder.
	File string

	// Text processes a single document passed directly, bypassing the drop
	// folder. Filename optionally names it for ID resolution.
	Text     string
	Filename string

	// NoLinks skips linked-document merging.
	NoLinks bool
}

// ProcessedDoc summarizes one document's outcome within a run.
type ProcessedDoc struct {
	File      string `json:"file"`
	TenderID  string `json:"tender_id,omitempty"`
	SpecCount int    `json:"spec_count"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ProcessOutput contains the result of the Process operation.
type ProcessOutput struct {
	RunID     string         `json:"run_id"`
	Processed []ProcessedDoc `json:"processed"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// newProcessor builds the pipeline from config: file-backed ID sequence,
// environment-keyed LLM client.
func newProcessor(cfg *config.Config) (*pipeline.Processor, error) {
	seq, err := tenderid.NewFileSequence(cfg.CounterFile)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	resolver := tenderid.NewResolver(cfg.IDPrefix, cfg.IDYear, seq)
	client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMModel, config.APIKey())
	return pipeline.New(cfg, client, resolver, slog.Default()), nil
}

// Process runs the extraction pipeline over the drop folder (or one document)
// and persists each result to the JSON store and the database index. A
// failing document is reported in the output, never aborts the batch.
func Process(ctx context.Context, database *sql.DB, cfg *config.Config, input ProcessInput) (*ProcessOutput, error) {
	processor, err := newProcessor(cfg)
	if err != nil {
		return nil, err
	}

	docs, err := collectDocuments(cfg, input)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.NewInvalidRequest("no documents to process")
	}

	runID, outcomes := processor.ProcessBatch(ctx, docs)

	out := &ProcessOutput{RunID: runID, Processed: make([]ProcessedDoc, 0, len(outcomes))}
	outStore := store.New(cfg.OutputDir)

	for _, oc := range outcomes {
		doc := ProcessedDoc{File: oc.Name}
		if oc.Err != nil {
			doc.Error = oc.Err.Error()
			out.Failed++
			out.Processed = append(out.Processed, doc)
			continue
		}

		rec := oc.Output.Tender
		if err := db.Upsert(database, &rec); err != nil {
			doc.Error = err.Error()
			out.Failed++
			out.Processed = append(out.Processed, doc)
			continue
		}
		path, err := outStore.Write(&rec)
		if err != nil {
			doc.Error = err.Error()
			out.Failed++
			out.Processed = append(out.Processed, doc)
			continue
		}

		doc.TenderID = rec.TenderID
		doc.SpecCount = rec.SpecCount
		doc.Path = path
		out.Succeeded++
		out.Processed = append(out.Processed, doc)
	}

	return out, nil
}

// collectDocuments resolves the input into pipeline documents.
func collectDocuments(cfg *config.Config, input ProcessInput) ([]pipeline.Document, error) {
	if input.Text != "" {
		return []pipeline.Document{{Filename: input.Filename, Text: input.Text}}, nil
	}

	folder := source.NewFolder(cfg.DropDir)

	var names []string
	if input.File != "" {
		names = []string{input.File}
	} else {
		var err error
		names, err = folder.List()
		if err != nil {
			return nil, err
		}
	}

	docs := make([]pipeline.Document, 0, len(names))
	for _, name := range names {
		text, err := folder.ExtractText(name)
		if err != nil {
			return nil, err
		}

		doc := pipeline.Document{Filename: name, Text: text}
		if !input.NoLinks {
			linked, err := folder.Linked(name)
			if err == nil {
				doc.Linked = linked
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
