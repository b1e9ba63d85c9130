package ops

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tenderscan/internal/config"
	"tenderscan/internal/db"
	"tenderscan/internal/errors"
	"tenderscan/internal/report"
)

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	// Limit caps how many tenders the report covers (most recent first).
	Limit int

	// HTML additionally writes the rendered HTML file.
	HTML bool
}

// ReportOutput contains the written report paths.
type ReportOutput struct {
	MarkdownPath string `json:"markdown_path"`
	HTMLPath     string `json:"html_path,omitempty"`
	Tenders      int    `json:"tenders"`
}

// Report writes a summary of processed tenders under the output directory.
func Report(database *sql.DB, cfg *config.Config, input ReportInput) (*ReportOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = MaxListLimit
	}

	tenders, err := db.List(database, limit, 0)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
	}

	md := report.Markdown(tenders, time.Now())
	mdPath := filepath.Join(cfg.OutputDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0600); err != nil {
		return nil, errors.NewInternal(err)
	}

	out := &ReportOutput{MarkdownPath: mdPath, Tenders: len(tenders)}

	if input.HTML {
		html, err := report.HTML(md)
		if err != nil {
			return nil, err
		}
		htmlPath := filepath.Join(cfg.OutputDir, "report.html")
		if err := os.WriteFile(htmlPath, []byte(html), 0600); err != nil {
			return nil, errors.NewInternal(err)
		}
		out.HTMLPath = htmlPath
	}

	return out, nil
}
