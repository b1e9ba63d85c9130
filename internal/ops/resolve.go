package ops

import (
	"tenderscan/internal/config"
	"tenderscan/internal/errors"
	"tenderscan/internal/tenderid"
)

// ResolveIDInput contains parameters for the ResolveID operation.
type ResolveIDInput struct {
	Filename string
	Text     string

	// NoGenerate reports NOT_FOUND instead of generating a new identifier
	// when neither the filename nor the text yields one.
	NoGenerate bool
}

// ResolveIDOutput contains the resolved identifier and which cascade stage
// produced it.
type ResolveIDOutput struct {
	TenderID string `json:"tender_id"`
	Source   string `json:"source"` // filename | text | generated
}

// ResolveID runs the tender-ID cascade standalone.
func ResolveID(cfg *config.Config, input ResolveIDInput) (*ResolveIDOutput, error) {
	if input.Filename == "" && input.Text == "" {
		return nil, errors.NewInvalidRequest("filename or text is required")
	}

	if id, ok := tenderid.FromFilename(input.Filename); ok {
		return &ResolveIDOutput{TenderID: id, Source: "filename"}, nil
	}
	if id, ok := tenderid.FromText(input.Text); ok {
		return &ResolveIDOutput{TenderID: id, Source: "text"}, nil
	}

	if input.NoGenerate {
		return nil, errors.NewNotFound("no identifier pattern matched")
	}

	seq, err := tenderid.NewFileSequence(cfg.CounterFile)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	id, err := tenderid.NewResolver(cfg.IDPrefix, cfg.IDYear, seq).Generate()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &ResolveIDOutput{TenderID: id, Source: "generated"}, nil
}
