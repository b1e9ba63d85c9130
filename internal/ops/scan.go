package ops

import (
	"tenderscan/internal/config"
	"tenderscan/internal/errors"
	"tenderscan/internal/extract"
	"tenderscan/internal/textutil"
)

// ScanInput contains parameters for the Scan operation.
type ScanInput struct {
	Text string
}

// ScanOutput contains the located section, the extracted specification
// records, and the important-info fields for one document text.
type ScanOutput struct {
	SectionLines int            `json:"section_lines"`
	Specs        extract.Result `json:"specs"`
	Info         extract.Info   `json:"important_info"`
	Fallback     bool           `json:"fallback"`
}

// Scan runs extraction over raw text without persisting anything. Useful for
// inspecting what the pipeline would produce for a document.
func Scan(cfg *config.Config, input ScanInput) (*ScanOutput, error) {
	text := textutil.Clean(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}

	maxLines := cfg.SectionMaxLines
	if maxLines <= 0 {
		maxLines = extract.MaxSectionLines
	}

	section := extract.LocateSectionN(text, maxLines)
	specs := extract.ExtractSpecs(section)
	fallback := false
	if specs.Count == 0 {
		specs = extract.ExtractFallback(text)
		fallback = specs.Count > 0
	}

	return &ScanOutput{
		SectionLines: len(section),
		Specs:        specs,
		Info:         extract.ExtractInfo(text),
		Fallback:     fallback,
	}, nil
}
