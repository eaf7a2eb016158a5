package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/flatvec/pkg/interchange"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Config holds the defaults used by the flatvec command.
type Config struct {
	// IndexWidth is the offset width in bits for packed vectors: 8, 16 or 32.
	IndexWidth int `yaml:"index_width"`
	// StrictOrder verifies key order when maps are parsed.
	StrictOrder bool    `yaml:"strict_order"`
	DumpFormat  string  `yaml:"dump_format"`
	Compress    bool    `yaml:"compress"`
	Logging     Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		IndexWidth: 16,
		DumpFormat: string(interchange.YAML),
		Logging:    Logging{Level: "info"},
	}
}

// LoadConfig loads configuration from the specified path. Fields missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration as YAML, creating parent directories.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every field that has a fixed set of values.
func (c *Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("invalid index_width: %w", err)
	}
	if _, err := interchange.ParseFormat(c.DumpFormat); err != nil {
		return fmt.Errorf("invalid dump_format: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	return nil
}

// Format returns the vector index format for IndexWidth.
func (c *Config) Format() (vec.Format, error) {
	return vec.FormatFromBits(c.IndexWidth)
}

// Level parses the logging level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.Logging.Level))
	return l, err
}
