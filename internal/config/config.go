package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// DropDir is the directory scanned for inbound document text files.
	DropDir string `json:"drop_dir,omitempty"`

	// OutputDir is where per-tender JSON records and reports are written.
	OutputDir string `json:"output_dir,omitempty"`

	// CounterFile is the path of the persistent sequence counter backing
	// generated tender identifiers.
	CounterFile string `json:"counter_file,omitempty"`

	// IDPrefix and IDYear shape generated identifiers ({PREFIX}-{YEAR}-{NNNN}).
	IDPrefix string `json:"id_prefix,omitempty"`
	IDYear   int    `json:"id_year,omitempty"`

	// SpecsMaxChars caps the technical_specifications field in the output
	// record. Text beyond the cap is truncated with an ellipsis marker.
	SpecsMaxChars int `json:"specs_max_chars"`

	// SectionMaxLines is the hard cap on collected specification-section lines.
	SectionMaxLines int `json:"section_max_lines"`

	// LLMBaseURL and LLMModel configure the optional refinement backend.
	// The API key is never stored in config; it comes from the
	// TENDERSCAN_API_KEY or OPENAI_API_KEY environment variable, and its
	// absence disables the LLM paths entirely.
	LLMBaseURL string `json:"llm_base_url,omitempty"`
	LLMModel   string `json:"llm_model,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// All tools are enabled by default. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DropDir:         "drop",
		OutputDir:       "out",
		CounterFile:     "tender_counter.txt",
		IDPrefix:        "TDR",
		IDYear:          2025,
		SpecsMaxChars:   2000,
		SectionMaxLines: 200,
		LLMBaseURL:      "https://api.openai.com/v1",
		LLMModel:        "gpt-4o-mini",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tenderscan.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DropDir = stringOr(overlay.DropDir, base.DropDir)
	result.OutputDir = stringOr(overlay.OutputDir, base.OutputDir)
	result.CounterFile = stringOr(overlay.CounterFile, base.CounterFile)
	result.IDPrefix = stringOr(overlay.IDPrefix, base.IDPrefix)
	result.LLMBaseURL = stringOr(overlay.LLMBaseURL, base.LLMBaseURL)
	result.LLMModel = stringOr(overlay.LLMModel, base.LLMModel)

	result.IDYear = intOr(overlay.IDYear, base.IDYear)
	result.SpecsMaxChars = intOr(overlay.SpecsMaxChars, base.SpecsMaxChars)
	result.SectionMaxLines = intOr(overlay.SectionMaxLines, base.SectionMaxLines)
	result.DBMaxOpenConns = intOr(overlay.DBMaxOpenConns, base.DBMaxOpenConns)
	result.DBMaxIdleConns = intOr(overlay.DBMaxIdleConns, base.DBMaxIdleConns)

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// ResolvePaths anchors relative path settings under baseDir. Absolute paths
// in config.json are left alone.
func (c *Config) ResolvePaths(baseDir string) {
	c.DropDir = anchor(baseDir, c.DropDir)
	c.OutputDir = anchor(baseDir, c.OutputDir)
	c.CounterFile = anchor(baseDir, c.CounterFile)
}

func anchor(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func stringOr(overlay, base string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func intOr(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// APIKey returns the LLM API key from the environment, empty when unset.
// TENDERSCAN_API_KEY takes precedence over OPENAI_API_KEY.
func APIKey() string {
	if key := os.Getenv("TENDERSCAN_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}
