package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/fitsio/format"
)

func TestDefaultConfig(t *testing.T) {
	require := require.New(t)

	config := DefaultConfig()
	require.Equal("info", config.Logging.Level)
	require.False(config.Logging.Debug)
	require.Zero(config.Output.BitPix)
	require.Equal("none", config.Output.Compression)
	require.True(config.Output.Stats)
	require.NotEmpty(config.CatalogDir)
	require.NoError(config.Validate())
}

func TestSaveLoadConfig(t *testing.T) {
	require := require.New(t)

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	config := DefaultConfig()
	config.CatalogDir = "/srv/catalog"
	config.Logging.Level = "debug"
	config.Output.BitPix = -32
	config.Output.Compression = "zstd"

	require.NoError(SaveConfig(config, configPath))
	require.True(ConfigExists(configPath))

	info, err := os.Stat(configPath)
	require.NoError(err)
	require.Equal(os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadConfig(configPath)
	require.NoError(err)
	require.Equal(config, loaded)

	level, err := loaded.SlogLevel()
	require.NoError(err)
	require.Equal(slog.LevelDebug, level)

	ct, err := loaded.Compression()
	require.NoError(err)
	require.Equal(format.CompressionZstd, ct)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	require := require.New(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0o600))

	loaded, err := LoadConfig(configPath)
	require.NoError(err)
	require.Equal("warn", loaded.Logging.Level)
	require.Equal("none", loaded.Output.Compression)
	require.True(loaded.Output.Stats)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad_yaml", content: "logging: [unterminated"},
		{name: "bad_level", content: "logging:\n  level: loud\n"},
		{name: "bad_bitpix", content: "output:\n  bitpix: 12\n"},
		{name: "bad_compression", content: "output:\n  compression: brotli\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0o600))

			_, err := LoadConfig(configPath)
			require.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.False(t, ConfigExists(filepath.Join(dir, "missing.yaml")))
}

func TestConfig_YAMLKeys(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	require.Contains(t, raw, "catalog_dir")
	require.Contains(t, raw, "logging")
	require.Contains(t, raw, "output")
}

func TestDefaultConfigPath(t *testing.T) {
	require.Equal(t, "config.yaml", filepath.Base(DefaultConfigPath()))
}
