// Package cmd implements the fitsio command line tool.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitsio/hdu"
	"github.com/arloliu/fitsio/internal/config"
)

// app carries the state shared by every subcommand once flags and configuration are resolved.
type app struct {
	configPath string
	logLevel   string
	debug      bool
	catalogDir string

	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// NewRootCommand builds the fitsio command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fitsio",
		Short: "fitsio - FITS image header and data tool",
		Long: `fitsio reads, inspects, converts and catalogs FITS primary images,
plain or compressed with zstd, s2 or lz4.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to the YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&a.debug, "debug", false, "Log header and data section transfers")
	flags.StringVar(&a.catalogDir, "catalog-dir", "", "Directory of the header catalog")

	root.AddCommand(
		newInfoCommand(a),
		newHeaderCommand(a),
		newConvertCommand(a),
		newCatalogCommand(a),
		newViewCommand(a),
	)

	return root
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	switch {
	case a.configPath != "":
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	case config.ConfigExists(config.DefaultConfigPath()):
		loaded, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("debug") {
		cfg.Logging.Debug = a.debug
	}
	if flags.Changed("catalog-dir") {
		cfg.CatalogDir = a.catalogDir
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	if cfg.Logging.Debug {
		level = min(level, slog.LevelDebug)
	}

	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

func (a *app) hduOptions(extra ...hdu.Option) []hdu.Option {
	opts := []hdu.Option{
		hdu.WithLogger(a.logger),
		hdu.WithDebug(a.cfg.Logging.Debug),
	}

	return append(opts, extra...)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
