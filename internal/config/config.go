package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Ledger     LedgerConfig       `yaml:"ledger"`
	Statements []StatementProfile `yaml:"statements,omitempty"`
}

// LedgerConfig locates the ledger output.
type LedgerConfig struct {
	Path string `yaml:"path"` // relative to the project root
}

// StatementProfile describes one bank account whose statement exports are
// imported, and how to decode them.
type StatementProfile struct {
	Name     string `yaml:"name"`
	Branch   string `yaml:"branch"`
	Number   string `yaml:"number"`
	Account  string `yaml:"account"`
	Currency string `yaml:"currency,omitempty"` // default EUR
	Encoding string `yaml:"encoding,omitempty"` // default utf-8
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
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

// Default returns a Config for a new project.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{Path: "ledger.csv"},
	}
}

// Profile returns the named statement profile.
func (c *Config) Profile(name string) (StatementProfile, bool) {
	for _, p := range c.Statements {
		if p.Name == name {
			return p, true
		}
	}
	return StatementProfile{}, false
}
