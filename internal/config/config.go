// Package config loads mdsweep configuration from .mdsweep/config.yaml,
// merging file values over defaults and CLI flags over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history storage configuration
type HistoryConfig struct {
	// Enabled turns run-history recording on
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepRuns is the maximum number of runs to retain (0 = unlimited)
	KeepRuns int `yaml:"keep_runs"`
}

// Config represents mdsweep configuration options
type Config struct {
	// LinterPath is the external linter executable name or path
	LinterPath string `yaml:"linter_path"`

	// Engine selects the lint engine: auto, tool, or builtin
	Engine string `yaml:"engine"`

	// DisabledRules are rule codes suppressed in every invocation
	DisabledRules []string `yaml:"disabled_rules"`

	// CrashMarkers are output substrings identifying tool-internal crashes
	CrashMarkers []string `yaml:"crash_markers"`

	// Exclude are extra doublestar exclusion patterns applied on top of
	// the .gitignore-derived ones
	Exclude []string `yaml:"exclude"`

	// Timeout is the per-file limit for linter invocations (0 = none)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LineLength enables the built-in line-length rule when > 0
	LineLength int `yaml:"line_length"`

	// History contains run-history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LinterPath:    "markdownlint",
		Engine:        "auto",
		DisabledRules: []string{"MD013", "MD033"},
		CrashMarkers:  nil, // nil means the linter package defaults apply
		Exclude:       nil,
		Timeout:       2 * time.Minute,
		LogLevel:      "info",
		LineLength:    0,
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   filepath.Join(".mdsweep", "history.db"),
			KeepRuns: 200,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Temporary struct so the timeout can be parsed as a duration string
	type yamlConfig struct {
		LinterPath    string        `yaml:"linter_path"`
		Engine        string        `yaml:"engine"`
		DisabledRules []string      `yaml:"disabled_rules"`
		CrashMarkers  []string      `yaml:"crash_markers"`
		Exclude       []string      `yaml:"exclude"`
		Timeout       string        `yaml:"timeout"`
		LogLevel      string        `yaml:"log_level"`
		LineLength    int           `yaml:"line_length"`
		History       HistoryConfig `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.LinterPath != "" {
		cfg.LinterPath = yamlCfg.LinterPath
	}
	if yamlCfg.Engine != "" {
		cfg.Engine = yamlCfg.Engine
	}
	if yamlCfg.DisabledRules != nil {
		cfg.DisabledRules = yamlCfg.DisabledRules
	}
	if yamlCfg.CrashMarkers != nil {
		cfg.CrashMarkers = yamlCfg.CrashMarkers
	}
	if yamlCfg.Exclude != nil {
		cfg.Exclude = yamlCfg.Exclude
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LineLength != 0 {
		cfg.LineLength = yamlCfg.LineLength
	}

	// Merge history config field by field; a partial history section keeps
	// defaults for fields it omits
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			history := yamlCfg.History
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = history.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = history.DBPath
			}
			if _, exists := historyMap["keep_runs"]; exists {
				cfg.History.KeepRuns = history.KeepRuns
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .mdsweep/config.yaml in the
// specified directory. A missing directory or file yields defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".mdsweep", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flag values into the configuration.
// Non-nil pointer values override configuration values; extraExcludes are
// appended rather than replacing the configured list.
func (c *Config) MergeWithFlags(engine *string, timeout *time.Duration, disabledRules []string, extraExcludes []string, noHistory *bool) {
	if engine != nil {
		c.Engine = *engine
	}
	if timeout != nil {
		c.Timeout = *timeout
	}
	if disabledRules != nil {
		c.DisabledRules = disabledRules
	}
	if len(extraExcludes) > 0 {
		c.Exclude = append(c.Exclude, extraExcludes...)
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.LinterPath == "" {
		return fmt.Errorf("linter_path cannot be empty")
	}

	validEngines := map[string]bool{
		"auto":    true,
		"tool":    true,
		"builtin": true,
	}
	if !validEngines[c.Engine] {
		return fmt.Errorf("invalid engine %q, must be one of: auto, tool, builtin", c.Engine)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if c.LineLength < 0 {
		return fmt.Errorf("line_length must be >= 0, got %d", c.LineLength)
	}

	if c.History.Enabled {
		if c.History.DBPath == "" {
			return fmt.Errorf("history.db_path cannot be empty when history is enabled")
		}
		if c.History.KeepRuns < 0 {
			return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
		}
	}

	return nil
}
