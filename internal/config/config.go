package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jcjr031064/cafe-ledger-flow/internal/id"
)

// FileName is the default config file name.
const FileName = "cafeledger.yaml"

// Config represents the top-level cafeledger.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Logging  LoggingConfig  `yaml:"logging"`
	Audit    AuditConfig    `yaml:"audit"`
}

// BusinessConfig identifies the coffee chain.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // ISO 4217 code used when printing amounts
}

// LedgerConfig controls how entries are recorded.
type LedgerConfig struct {
	ReferencePrefix string          `yaml:"reference_prefix"`
	Tolerance       decimal.Decimal `yaml:"tolerance"`
	Seed            bool            `yaml:"seed"`            // load the default entities, and the default chart unless Chart is set
	Chart           string          `yaml:"chart,omitempty"` // chart of accounts CSV, relative to the config file
	CreatedBy       string          `yaml:"created_by"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// AuditConfig controls where the audit trail is appended.
type AuditConfig struct {
	Path string `yaml:"path,omitempty"` // empty = keep in memory only
}

// Load reads a cafeledger.yaml file from disk. Keys the file leaves out
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values the ledger cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Ledger.ReferencePrefix) == "" {
		return fmt.Errorf("config: ledger.reference_prefix is required")
	}
	if strings.Contains(c.Ledger.ReferencePrefix, "-") {
		return fmt.Errorf("config: ledger.reference_prefix %q must not contain '-'", c.Ledger.ReferencePrefix)
	}
	if c.Ledger.Tolerance.IsNegative() {
		return fmt.Errorf("config: ledger.tolerance must not be negative, got %s", c.Ledger.Tolerance)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default(businessName string) *Config {
	if businessName == "" {
		businessName = "Coffee Chain"
	}
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "USD",
		},
		Ledger: LedgerConfig{
			ReferencePrefix: id.DefaultPrefix,
			Tolerance:       decimal.New(1, -2),
			Seed:            true,
			CreatedBy:       "system",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
