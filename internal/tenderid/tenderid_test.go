package tenderid

import (
	"os"
	"path/filepath"
	"testing"
)

// memSequence is an in-memory Sequence for tests.
type memSequence struct {
	n int
}

func (s *memSequence) Next() (int, error) {
	s.n++
	return s.n, nil
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantID   string
		wantOK   bool
	}{
		{
			name:     "clean stem",
			filename: "RFP-2025-0042.pdf",
			wantID:   "RFP-2025-0042",
			wantOK:   true,
		},
		{
			name:     "case preserved",
			filename: "Tender_AbC_991.txt",
			wantID:   "Tender_AbC_991",
			wantOK:   true,
		},
		{
			name:     "too short",
			filename: "ab1.pdf",
			wantOK:   false,
		},
		{
			name:     "transient temp prefix",
			filename: "temp_RFP-2025-0042.pdf",
			wantOK:   false,
		},
		{
			name:     "transient download prefix",
			filename: "downloaded_tender123.pdf",
			wantOK:   false,
		},
		{
			name:     "attachment prefix",
			filename: "attachment_00123456.pdf",
			wantOK:   false,
		},
		{
			name:     "stem with spaces rejected",
			filename: "my tender doc.pdf",
			wantOK:   false,
		},
		{
			name:     "empty",
			filename: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := FromFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantID string
		wantOK bool
	}{
		{
			name:   "rfp reference",
			text:   "This RFP no: ABC-2025-17 invites bids",
			wantID: "ABC-2025-17",
			wantOK: true,
		},
		{
			name:   "compact rfp shape",
			text:   "see document RFP-2025-001 for details",
			wantID: "RFP-2025-001",
			wantOK: true,
		},
		{
			name:   "tender number",
			text:   "Tender No: PWR/2025/0042 dated today",
			wantID: "PWR/2025/0042",
			wantOK: true,
		},
		{
			name:   "bid number uppercased",
			text:   "bid id: nb-771-x",
			wantID: "NB-771-X",
			wantOK: true,
		},
		{
			name:   "gem marketplace id",
			text:   "Bids invited under GEM/2025/B/1234567 portal",
			wantID: "GEM/2025/B/1234567",
			wantOK: true,
		},
		{
			name:   "generic shape",
			text:   "reference PQRS-2025-00123 applies",
			wantID: "PQRS-2025-00123",
			wantOK: true,
		},
		{
			name:   "nothing",
			text:   "a letter about lunch plans",
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := FromText(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (id=%q)", ok, tt.wantOK, id)
			}
			if ok && id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestFromText_RFQBeatsGeneric(t *testing.T) {
	// Both a quotation reference and a generic-looking token are present;
	// the higher-priority stage wins regardless of position in the text.
	text := "Token XYZ-2025-001 appears first. Request for quotation ref: QUO-88-AL."

	id, ok := FromText(text)
	if !ok {
		t.Fatal("expected a match")
	}
	if id != "QUO-88-AL" {
		t.Errorf("id = %q, want %q (rfq stage must beat generic)", id, "QUO-88-AL")
	}
}

func TestResolver_FilenamePrecedence(t *testing.T) {
	r := NewResolver("", 0, &memSequence{})

	id, err := r.Resolve("RFP-2025-0042.pdf", "no other id pattern in this body")
	if err != nil {
		t.Fatal(err)
	}
	if id != "RFP-2025-0042" {
		t.Errorf("id = %q, want %q", id, "RFP-2025-0042")
	}
}

func TestResolver_Generate(t *testing.T) {
	r := NewResolver("TDR", 2025, &memSequence{})

	first, err := r.Resolve("", "nothing matches here at all")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve("", "nothing matches here at all")
	if err != nil {
		t.Fatal(err)
	}

	if first != "TDR-2025-0001" {
		t.Errorf("first = %q, want %q", first, "TDR-2025-0001")
	}
	if second != "TDR-2025-0002" {
		t.Errorf("second = %q, want %q", second, "TDR-2025-0002")
	}
}

func TestFileSequence_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.txt")

	seq, err := NewFileSequence(path)
	if err != nil {
		t.Fatal(err)
	}

	n1, err := seq.Next()
	if err != nil {
		t.Fatal(err)
	}
	n2, err := seq.Next()
	if err != nil {
		t.Fatal(err)
	}
	if n2 <= n1 {
		t.Errorf("counters not strictly increasing: %d then %d", n1, n2)
	}

	// Simulated restart: reload from file.
	seq2, err := NewFileSequence(path)
	if err != nil {
		t.Fatal(err)
	}
	n3, err := seq2.Next()
	if err != nil {
		t.Fatal(err)
	}
	if n3 != n2+1 {
		t.Errorf("after restart Next() = %d, want %d", n3, n2+1)
	}
}

func TestFileSequence_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "counter.txt")

	seq, err := NewFileSequence(path)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Value() != 0 {
		t.Errorf("Value() = %d, want 0", seq.Value())
	}

	n, err := seq.Next()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Next() = %d, want 1", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1" {
		t.Errorf("counter file = %q, want %q", string(data), "1")
	}
}

func TestFileSequence_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.txt")
	if err := os.WriteFile(path, []byte("not a number"), 0600); err != nil {
		t.Fatal(err)
	}

	seq, err := NewFileSequence(path)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Value() != 0 {
		t.Errorf("Value() = %d, want 0 for corrupt file", seq.Value())
	}
}
