package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the jsonshape tools
type Config struct {
	Indent int          `yaml:"indent"`
	Keys   KeysConfig   `yaml:"keys"`
	Lookup LookupConfig `yaml:"lookup"`
	Dev    DevConfig    `yaml:"dev"`
}

// KeysConfig controls which member keys the shape walker treats specially
type KeysConfig struct {
	// Kind lists the keys whose string values are collected in the kind catalogue.
	Kind []string `yaml:"kind"`
	// Values lists the keys whose string values are printed next to their kind.
	Values []string `yaml:"values"`
	// Normalize compares keys in snake_case, so "Kind" and "KIND" match "kind".
	Normalize bool `yaml:"normalize"`
}

// LookupConfig controls the element lookup tool
type LookupConfig struct {
	InnerKey      string `yaml:"inner_key"`
	SidecarSuffix string `yaml:"sidecar_suffix"`
	TextIndent    int    `yaml:"text_indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent: 2,
		Keys: KeysConfig{
			Kind:      []string{"kind"},
			Values:    []string{"kind", "name"},
			Normalize: false,
		},
		Lookup: LookupConfig{
			InnerKey:      "inner",
			SidecarSuffix: ".json",
			TextIndent:    2,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the tools cannot work with
func (c *Config) Validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.Lookup.TextIndent < 0 {
		return fmt.Errorf("lookup.text_indent must not be negative, got %d", c.Lookup.TextIndent)
	}
	if c.Lookup.InnerKey == "" {
		return fmt.Errorf("lookup.inner_key must not be empty")
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonshape.yml", ".jsonshape.yaml", "jsonshape.yml", "jsonshape.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// normalizeKey returns the form of a key used for comparisons
func (c *Config) normalizeKey(key string) string {
	if c.Keys.Normalize {
		return strcase.ToSnake(key)
	}
	return key
}

func (c *Config) matchesAny(tag string, keys []string) bool {
	tag = c.normalizeKey(tag)
	for _, key := range keys {
		if c.normalizeKey(key) == tag {
			return true
		}
	}
	return false
}

// IsKindKey reports whether values under tag belong in the kind catalogue
func (c *Config) IsKindKey(tag string) bool {
	return c.matchesAny(tag, c.Keys.Kind)
}

// IsValueKey reports whether string values under tag are printed
func (c *Config) IsValueKey(tag string) bool {
	return c.matchesAny(tag, c.Keys.Values)
}

// SidecarPath returns the path of the JSON dump that belongs to source
func (c *Config) SidecarPath(source string) string {
	return source + c.Lookup.SidecarSuffix
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// A negative cliIndent means the flag was not given.
func LoadConfigWithCLI(configPath string, cliIndent int, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliIndent >= 0 {
		cfg.Indent = cliIndent
	}
	// Debug can only be switched on from the command line
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
