package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitsio/catalog"
)

func newCatalogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the header catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "index DIR",
			Short: "Index every FITS file below DIR",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(func(cat *catalog.Catalog) error {
					n, err := catalog.IndexDir(cmd.Context(), cat, args[0], a.hduOptions()...)
					if err != nil {
						return err
					}
					a.printf("indexed %d files\n", n)

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show PATH",
			Short: "Print the catalog entry of a file as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.withCatalog(func(cat *catalog.Catalog) error {
					path, err := filepath.Abs(args[0])
					if err != nil {
						return err
					}
					e, err := cat.Get(path)
					if err != nil {
						return err
					}

					data, err := json.MarshalIndent(e, "", "  ")
					if err != nil {
						return err
					}
					a.printf("%s\n", data)

					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list [PREFIX]",
			Short: "List catalog entries whose path starts with PREFIX",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				prefix := ""
				if len(args) == 1 {
					prefix = args[0]
				}

				return a.withCatalog(func(cat *catalog.Catalog) error {
					for e, err := range cat.List(prefix) {
						if err != nil {
							return err
						}
						a.printf("%s\t%d\t%s\t%s\n", e.Path, e.Header.BitPix, formatAxes(e.Header.Axes), e.Digest)
					}

					return nil
				})
			},
		},
	)

	return cmd
}

func (a *app) withCatalog(fn func(*catalog.Catalog) error) error {
	if err := os.MkdirAll(a.cfg.CatalogDir, 0o750); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}

	cat, err := catalog.Open(a.cfg.CatalogDir, catalog.WithLogger(a.logger))
	if err != nil {
		return err
	}

	err = fn(cat)
	if cerr := cat.Close(); err == nil {
		err = cerr
	}

	return err
}
