package hdu

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/fitsio/encoding"
	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/internal/options"
)

// Config holds the settings shared by Decoder, Encoder and the file helpers.
type Config struct {
	logger      *slog.Logger
	debug       bool
	withStats   bool
	overwrite   bool
	compression format.CompressionType // zero selects by file extension
}

// Option configures a Decoder, an Encoder or a file helper.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{logger: slog.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithDebug enables debug logging of header and data section transfers.
func WithDebug(debug bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.debug = debug
	})
}

// WithStats makes the encoder compute DATAMIN and DATAMAX from the pixels.
func WithStats(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.withStats = enabled
	})
}

// WithOverwrite allows WriteFile to replace an existing file.
func WithOverwrite(overwrite bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.overwrite = overwrite
	})
}

// WithCompression forces the transport compression of ReadFile and WriteFile
// instead of deriving it from the file extension.
func WithCompression(compressionType format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		switch compressionType {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = compressionType
			return nil
		default:
			return fmt.Errorf("invalid compression: %s", compressionType)
		}
	})
}

func (cfg *Config) codecOptions() []encoding.CodecOption {
	return []encoding.CodecOption{
		encoding.WithDebug(cfg.debug),
		encoding.WithLogger(cfg.logger),
	}
}
