package textutil

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapse spaces",
			input: "Material   of    conductor",
			want:  "Material of conductor",
		},
		{
			name:  "strip control characters",
			input: "Voltage\x00 grade\x1f: 1100\x0bV",
			want:  "Voltage grade: 1100V",
		},
		{
			name:  "normalize blank line runs",
			input: "Section A\n\n\n\nSection B",
			want:  "Section A\n\nSection B",
		},
		{
			name:  "blank lines with stray spaces",
			input: "Section A\n   \n\t\nSection B",
			want:  "Section A\n\nSection B",
		},
		{
			name:  "trim ends",
			input: "   \n  Technical Specifications  \n  ",
			want:  "Technical Specifications",
		},
		{
			name:  "carriage returns",
			input: "line one\r\nline two",
			want:  "line one\nline two",
		},
		{
			name:  "tabs within line",
			input: "Quantity\t:\t500 meters",
			want:  "Quantity : 500 meters",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "  \t\n\n  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Material   of    conductor:  Aluminium",
		"A\n\n\n\nB\r\nC\x00D",
		"  padded  \n\n  text  ",
		"",
		"already clean",
		"Technical Specifications\nVoltage: 1100 V\n\nPayment terms",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first=%q second=%q", input, once, twice)
		}
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two paragraphs",
			input: "First paragraph here.\n\nSecond  paragraph.",
			want:  []string{"First paragraph here.", "Second paragraph."},
		},
		{
			name:  "empties dropped",
			input: "One\n\n   \n\nTwo",
			want:  []string{"One", "Two"},
		},
		{
			name:  "single paragraph",
			input: "Just one block\nwith two lines",
			want:  []string{"Just one block\nwith two lines"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paragraphs(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paragraphs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic split",
			input: "Supply of cables. Delivery within 30 days! Is it urgent? Yes",
			want:  []string{"Supply of cables", "Delivery within 30 days", "Is it urgent", "Yes"},
		},
		{
			name: "over-splits on abbreviations",
			// Known limitation: no abbreviation awareness.
			input: "Standards e.g. IS 7098 apply.",
			want:  []string{"Standards e.g", "IS 7098 apply."},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and collapse",
			input: "  Material of   Conductor:  Aluminium ",
			want:  "material of conductor: aluminium",
		},
		{
			name:  "newlines collapsed",
			input: "key:\nvalue",
			want:  "key: value",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSpace(tt.input); got != tt.want {
				t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
