package ops

import (
	"path/filepath"
	"strings"
	"testing"

	"tenderscan/internal/config"
	"tenderscan/internal/errors"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultListLimit},
		{-5, DefaultListLimit},
		{1, 1},
		{MaxListLimit, MaxListLimit},
		{MaxListLimit + 1, MaxListLimit},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScan(t *testing.T) {
	cfg := config.DefaultConfig()

	out, err := Scan(cfg, ScanInput{Text: tenderDoc})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out.SectionLines == 0 {
		t.Error("expected a located section")
	}
	if out.Specs.Count != 2 {
		t.Errorf("Specs.Count = %d, want 2", out.Specs.Count)
	}
	if out.Fallback {
		t.Error("expected section extraction, not fallback")
	}
	if out.Info.Ministry != "Ministry of Power" {
		t.Errorf("Ministry = %q", out.Info.Ministry)
	}
}

func TestScan_Fallback(t *testing.T) {
	cfg := config.DefaultConfig()

	// No section header anywhere, but colon-separated pairs exist.
	out, err := Scan(cfg, ScanInput{Text: "Voltage grade: 1100V\nConductor material: Aluminium"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !out.Fallback {
		t.Error("expected fallback extraction")
	}
	if out.Specs.Count == 0 {
		t.Error("expected fallback records")
	}
}

func TestScan_EmptyText(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, err := Scan(cfg, ScanInput{Text: "  \n\t "}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestResolveID(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CounterFile = filepath.Join(t.TempDir(), "counter.txt")

	tests := []struct {
		name       string
		input      ResolveIDInput
		wantID     string
		wantSource string
	}{
		{
			name:       "filename wins over text",
			input:      ResolveIDInput{Filename: "RFP-2025-0042.txt", Text: "Tender no: XYZ/2025/9"},
			wantID:     "RFP-2025-0042",
			wantSource: "filename",
		},
		{
			name:       "text cascade",
			input:      ResolveIDInput{Filename: "temp_doc.txt", Text: "RFP ref: ABC-2025-17."},
			wantID:     "ABC-2025-17",
			wantSource: "text",
		},
		{
			name:       "generated",
			input:      ResolveIDInput{Filename: "temp_doc.txt", Text: "nothing identifiable here"},
			wantID:     "TDR-2025-0001",
			wantSource: "generated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ResolveID(cfg, tt.input)
			if err != nil {
				t.Fatalf("ResolveID: %v", err)
			}
			if out.TenderID != tt.wantID {
				t.Errorf("TenderID = %q, want %q", out.TenderID, tt.wantID)
			}
			if out.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", out.Source, tt.wantSource)
			}
		})
	}
}

func TestResolveID_NoGenerate(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := ResolveID(cfg, ResolveIDInput{Filename: "temp_doc.txt", Text: "plain prose", NoGenerate: true})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestResolveID_EmptyInput(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, err := ResolveID(cfg, ResolveIDInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    ClassifyInput
		isTender bool
		mode     string
	}{
		{
			name:     "message with subject keyword",
			input:    ClassifyInput{Subject: "Tender for cable supply", Body: "see attached"},
			isTender: true,
			mode:     "message",
		},
		{
			name:     "promotional message",
			input:    ClassifyInput{Subject: "Special offer inside", Body: "unsubscribe anytime"},
			isTender: false,
			mode:     "message",
		},
		{
			name:     "text mode takes precedence",
			input:    ClassifyInput{Subject: "Tender for cables", Text: "nothing procurement-shaped"},
			isTender: false,
			mode:     "text",
		},
		{
			name:     "tender text",
			input:    ClassifyInput{Text: strings.Join([]string{"Invitation to tender.", "Earnest money deposit required.", "Bill of quantities attached.", "Technical specification enclosed."}, " ")},
			isTender: true,
			mode:     "text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Classify(tt.input)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if out.IsTender != tt.isTender {
				t.Errorf("IsTender = %v, want %v", out.IsTender, tt.isTender)
			}
			if out.Mode != tt.mode {
				t.Errorf("Mode = %q, want %q", out.Mode, tt.mode)
			}
		})
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	if _, err := Classify(ClassifyInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}
