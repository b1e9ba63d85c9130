package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	def := DefaultConfig()
	if cfg.SpecsMaxChars != def.SpecsMaxChars {
		t.Errorf("SpecsMaxChars = %d, want %d", cfg.SpecsMaxChars, def.SpecsMaxChars)
	}
	if cfg.SectionMaxLines != def.SectionMaxLines {
		t.Errorf("SectionMaxLines = %d, want %d", cfg.SectionMaxLines, def.SectionMaxLines)
	}
	if cfg.IDPrefix != "TDR" {
		t.Errorf("IDPrefix = %q, want %q", cfg.IDPrefix, "TDR")
	}
}

func TestLoad_PartialFileMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"id_prefix": "PWR", "specs_max_chars": 500, "disabled_tools": ["tender_fetch"]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.IDPrefix != "PWR" {
		t.Errorf("IDPrefix = %q, want %q", cfg.IDPrefix, "PWR")
	}
	if cfg.SpecsMaxChars != 500 {
		t.Errorf("SpecsMaxChars = %d, want 500", cfg.SpecsMaxChars)
	}
	// Untouched fields keep defaults.
	if cfg.SectionMaxLines != 200 {
		t.Errorf("SectionMaxLines = %d, want 200", cfg.SectionMaxLines)
	}
	if cfg.IDYear != 2025 {
		t.Errorf("IDYear = %d, want 2025", cfg.IDYear)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "tender_fetch" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{
		OutputDir:      "/srv/tenders",
		DBMaxOpenConns: 1,
		DisabledTools:  []string{"tender_list", " tender_list ", ""},
	}

	got := Merge(base, overlay)

	if got.OutputDir != "/srv/tenders" {
		t.Errorf("OutputDir = %q", got.OutputDir)
	}
	if got.DropDir != base.DropDir {
		t.Errorf("DropDir = %q, want base %q", got.DropDir, base.DropDir)
	}
	if got.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", got.DBMaxOpenConns)
	}
	if len(got.DisabledTools) != 1 {
		t.Errorf("DisabledTools = %v, want single deduplicated entry", got.DisabledTools)
	}
}

func TestAPIKey_Precedence(t *testing.T) {
	t.Setenv("TENDERSCAN_API_KEY", "ts-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	if got := APIKey(); got != "ts-key" {
		t.Errorf("APIKey() = %q, want ts-key", got)
	}

	t.Setenv("TENDERSCAN_API_KEY", "")
	if got := APIKey(); got != "oa-key" {
		t.Errorf("APIKey() = %q, want oa-key", got)
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "/var/tenderscan/out"
	cfg.ResolvePaths("/home/u/.tenderscan")

	if cfg.DropDir != filepath.Join("/home/u/.tenderscan", "drop") {
		t.Errorf("DropDir = %q", cfg.DropDir)
	}
	if cfg.OutputDir != "/var/tenderscan/out" {
		t.Errorf("absolute OutputDir rewritten to %q", cfg.OutputDir)
	}
	if cfg.CounterFile != filepath.Join("/home/u/.tenderscan", "tender_counter.txt") {
		t.Errorf("CounterFile = %q", cfg.CounterFile)
	}
}
