// Package config loads and saves the YAML configuration of the fitsio command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/fitsio/format"
)

// Config represents the fitsio command configuration.
type Config struct {
	CatalogDir string  `yaml:"catalog_dir"`
	Logging    Logging `yaml:"logging"`
	Output     Output  `yaml:"output"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// Output contains the defaults used when writing files.
type Output struct {
	// BitPix of converted files; 0 keeps the input encoding.
	BitPix      int    `yaml:"bitpix"`
	Compression string `yaml:"compression"`
	Overwrite   bool   `yaml:"overwrite"`
	Stats       bool   `yaml:"stats"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		CatalogDir: defaultCatalogDir(),
		Logging: Logging{
			Level: "info",
		},
		Output: Output{
			Compression: "none",
			Stats:       true,
		},
	}
}

// LoadConfig loads configuration from configPath. Fields missing from the file keep
// their default values.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig writes config to configPath, creating the directory when needed.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns ~/.config/fitsio/config.yaml, or ./fitsio.yaml when the
// home directory is unknown.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./fitsio.yaml"
	}

	return filepath.Join(homeDir, ".config", "fitsio", "config.yaml")
}

// ConfigExists reports whether a configuration file exists at configPath.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return err == nil
}

// Validate checks the log level, the output BITPIX and the compression name.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Output.BitPix != 0 && !format.BitPix(c.Output.BitPix).Valid() {
		return fmt.Errorf("unsupported output bitpix %d", c.Output.BitPix)
	}
	if _, err := c.Compression(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses Logging.Level. An empty level means info.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	name := strings.TrimSpace(c.Logging.Level)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	return level, nil
}

// Compression parses Output.Compression.
func (c *Config) Compression() (format.CompressionType, error) {
	ct, ok := format.ParseCompression(c.Output.Compression)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q", c.Output.Compression)
	}

	return ct, nil
}

func defaultCatalogDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./catalog"
	}

	return filepath.Join(homeDir, ".local", "share", "fitsio", "catalog")
}
