package catalog

import (
	"log/slog"

	"github.com/cockroachdb/pebble/vfs"

	"github.com/arloliu/fitsio/internal/options"
)

// Config holds catalog settings.
type Config struct {
	fs     vfs.FS
	sync   bool
	logger *slog.Logger
}

// Option configures Open.
type Option = options.Option[*Config]

// WithFS stores the catalog on fs, such as vfs.NewMem() in tests.
func WithFS(fs vfs.FS) Option {
	return options.NoError(func(cfg *Config) {
		if fs != nil {
			cfg.fs = fs
		}
	})
}

// WithSync makes every Put and Delete wait for the write-ahead log to be synced.
func WithSync(sync bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.sync = sync
	})
}

// WithLogger sets the logger used by IndexDir to report skipped files.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}
