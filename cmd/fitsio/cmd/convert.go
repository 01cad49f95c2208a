package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/hdu"
)

type convertOptions struct {
	bitpix      int
	bscale      float64
	bzero       float64
	history     string
	comment     string
	compression string
	force       bool
}

func newConvertCommand(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Re-encode a file with another BITPIX, scaling or compression",
		Long: `convert reads IN and writes OUT, optionally changing BITPIX, BSCALE and BZERO.
A HISTORY record naming the conversion is appended. The output compression follows
--compression, then the OUT extension, then the configuration file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args[0], args[1], opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.bitpix, "bitpix", 0, "Output BITPIX: 8, 16, 32, -32 or -64 (default: keep)")
	flags.Float64Var(&opts.bscale, "bscale", 1, "Output BSCALE")
	flags.Float64Var(&opts.bzero, "bzero", 0, "Output BZERO")
	flags.StringVar(&opts.history, "history", "", "Extra HISTORY text")
	flags.StringVar(&opts.comment, "comment", "", "Extra COMMENT text")
	flags.StringVar(&opts.compression, "compression", "", "Output compression: none, zstd, s2 or lz4")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite OUT if it exists")

	return cmd
}

func (a *app) convert(cmd *cobra.Command, in, out string, opts convertOptions) error {
	img, err := hdu.ReadFile(in, a.hduOptions()...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	bitpix := format.BitPix(a.cfg.Output.BitPix)
	if flags.Changed("bitpix") {
		bitpix = format.BitPix(opts.bitpix)
	}
	if bitpix != 0 {
		if !bitpix.Valid() {
			return fmt.Errorf("unsupported output bitpix %d", int(bitpix))
		}
		if bitpix.IsFloat() && !img.Header.BitPix.IsFloat() {
			img.Header.BScale, img.Header.BZero = 1, 0
		}
		img.Header.BitPix = bitpix
	}
	if flags.Changed("bscale") {
		img.Header.BScale = opts.bscale
	}
	if flags.Changed("bzero") {
		img.Header.BZero = opts.bzero
	}
	if err := img.Header.Validate(); err != nil {
		return err
	}

	if err := img.AddComment(opts.comment); err != nil {
		return err
	}
	if err := img.AddHistory(opts.history); err != nil {
		return err
	}
	rec := hdu.NewHistoryRecord("fitsio convert", "rescale", fmt.Sprintf("%s -> %s", in, out))
	if err := img.AddHistoryRecord(rec); err != nil {
		return err
	}

	out = hdu.FileName(out)
	ct, err := a.outputCompression(out, opts.compression)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(out, ct.Extension()) {
		out += ct.Extension()
	}

	err = hdu.WriteFile(out, img, a.hduOptions(
		hdu.WithCompression(ct),
		hdu.WithOverwrite(opts.force || a.cfg.Output.Overwrite),
		hdu.WithStats(a.cfg.Output.Stats),
	)...)
	if err != nil {
		return err
	}

	a.logger.Info("converted", "in", in, "out", out, "bitpix", int(img.Header.BitPix), "run", rec.RunID.String())
	a.printf("%s\n", out)

	return nil
}

// outputCompression resolves the compression from the flag, the file extension and
// the configuration, in that order.
func (a *app) outputCompression(out, flag string) (format.CompressionType, error) {
	if flag != "" {
		ct, ok := format.ParseCompression(flag)
		if !ok {
			return 0, fmt.Errorf("unknown --compression %q", flag)
		}

		return ct, nil
	}
	if ct := format.CompressionForPath(out); ct != format.CompressionNone {
		return ct, nil
	}

	return a.cfg.Compression()
}
