package catalog

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/arloliu/fitsio/hdu"
)

// IndexDir reads every FITS file below root, compressed or not, and puts its entry
// into c. Files that fail to decode are logged and skipped. The walk stops when ctx
// is cancelled.
//
// Returns the number of entries stored.
func IndexDir(ctx context.Context, c *Catalog, root string, opts ...hdu.Option) (int, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	stored := 0
	fits := lo.Filter(paths, func(path string, _ int) bool {
		return strings.Contains(filepath.Base(path), ".fit")
	})
	for _, path := range fits {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		img, err := hdu.ReadFile(path, opts...)
		if err != nil {
			c.cfg.logger.Warn("skipping file", "path", path, "error", err)
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if _, err := c.Put(NewEntry(abs, img)); err != nil {
			return stored, err
		}
		stored++
	}

	return stored, nil
}

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
