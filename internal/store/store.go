// Package store writes one JSON record per processed tender under the output
// directory. Filenames derive from the tender ID, so two documents resolving
// to the same ID silently overwrite each other (last write wins).
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"tenderscan/internal/errors"
	"tenderscan/internal/tender"
)

// unsafeFilenameChars are replaced with underscores when deriving a filename
// from a tender ID (marketplace IDs contain slashes).
var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Store persists tender records as JSON files.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the output file path for a tender ID.
func (s *Store) Path(tenderID string) string {
	name := unsafeFilenameChars.ReplaceAllString(tenderID, "_")
	return filepath.Join(s.dir, name+".json")
}

// Write serializes the record to its derived path, overwriting any existing
// file. Returns the path written.
func (s *Store) Write(t *tender.Tender) (string, error) {
	if t.TenderID == "" {
		return "", errors.NewInvalidRequest("tender_id is required")
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", errors.NewInternal(err)
	}
	data = append(data, '\n')

	path := s.Path(t.TenderID)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to write output record: %w", err))
	}
	return path, nil
}

// Read loads the record for a tender ID from disk.
func (s *Store) Read(tenderID string) (*tender.Tender, error) {
	data, err := os.ReadFile(s.Path(tenderID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(tenderID)
		}
		return nil, errors.NewInternal(err)
	}

	var t tender.Tender
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("corrupt output record for %s: %w", tenderID, err))
	}
	return &t, nil
}
