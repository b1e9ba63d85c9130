// Package source provides the document text boundary: a drop folder of
// plain-text files, one per inbound tender document, plus locally resolved
// linked documents. Converting PDFs or mailboxes into these files is outside
// this module.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tenderscan/internal/errors"
)

// Document is one resolved text, tagged with the file it came from.
type Document struct {
	Name string
	Text string
}

// linkedRelevanceKeywords filter linked documents to those plausibly carrying
// specification content.
var linkedRelevanceKeywords = []string{
	"spec", "specification", "technical", "annexure", "atc", "download",
}

// Folder is a drop-directory text source.
type Folder struct {
	dir string
}

// NewFolder creates a Folder over dir.
func NewFolder(dir string) *Folder {
	return &Folder{dir: dir}
}

// List returns the .txt filenames in the drop directory, sorted. A missing
// directory is an empty drop, not an error.
func (f *Folder) List() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewSourceUnavailable(f.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ExtractText reads one document's text. An empty file is a valid empty
// document; every extractor downstream tolerates it.
func (f *Folder) ExtractText(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(name)
		}
		return "", errors.NewSourceUnavailable(name, err)
	}
	return string(data), nil
}

// Linked returns already-resolved documents linked from the named one,
// filtered to those whose filename suggests specification content. They live
// under <stem>_linked/ beside the main file. Order is deterministic.
func (f *Folder) Linked(name string) ([]Document, error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	linkedDir := filepath.Join(f.dir, stem+"_linked")

	entries, err := os.ReadDir(linkedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewSourceUnavailable(linkedDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		if isLinkedRelevant(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []Document
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(linkedDir, n))
		if err != nil {
			// One unreadable linked document does not sink the rest.
			continue
		}
		docs = append(docs, Document{Name: n, Text: string(data)})
	}
	return docs, nil
}

func isLinkedRelevant(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range linkedRelevanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
