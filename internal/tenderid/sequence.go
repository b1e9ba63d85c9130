package tenderid

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sequence provides monotonically increasing counter values for generated
// identifiers. Implementations need not be safe for concurrent use; callers
// running parallel pipelines must serialize access externally.
type Sequence interface {
	Next() (int, error)
}

// FileSequence is the authoritative Sequence implementation: a single text
// file holding one integer. The file is read once at construction and
// rewritten in full after every generated value — not on lookups. There is no
// inter-process locking; concurrent processes can read a stale counter and
// emit duplicate identifiers. Known limitation.
type FileSequence struct {
	path    string
	counter int
}

// NewFileSequence loads the counter from path, starting at zero when the file
// is missing or unreadable.
func NewFileSequence(path string) (*FileSequence, error) {
	s := &FileSequence{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read counter file: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		// Corrupt counter file: start over rather than fail the pipeline.
		return s, nil
	}
	s.counter = n
	return s, nil
}

// Next increments the counter and flushes it to disk.
func (s *FileSequence) Next() (int, error) {
	s.counter++
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return 0, fmt.Errorf("create counter directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(s.counter)), 0600); err != nil {
		return 0, fmt.Errorf("write counter file: %w", err)
	}
	return s.counter, nil
}

// Value returns the current counter without advancing it.
func (s *FileSequence) Value() int {
	return s.counter
}
