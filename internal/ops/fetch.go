package ops

import (
	"database/sql"
	"strings"

	"tenderscan/internal/config"
	"tenderscan/internal/db"
	"tenderscan/internal/errors"
	"tenderscan/internal/store"
	"tenderscan/internal/tender"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	TenderID string

	// FromFile reads the JSON output record instead of the database index.
	FromFile bool
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	tender.Tender
	Path string `json:"path,omitempty"`
}

// Fetch retrieves one tender record by ID.
func Fetch(database *sql.DB, cfg *config.Config, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.TenderID)
	if id == "" {
		return nil, errors.NewInvalidRequest("tender_id is required")
	}

	outStore := store.New(cfg.OutputDir)
	if input.FromFile {
		t, err := outStore.Read(id)
		if err != nil {
			return nil, err
		}
		return &FetchOutput{Tender: *t, Path: outStore.Path(id)}, nil
	}

	t, err := db.GetByID(database, id)
	if err != nil {
		return nil, err
	}
	return &FetchOutput{Tender: *t}, nil
}
