package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/arloliu/fitsio/hdu"
	"github.com/arloliu/fitsio/internal/hash"
	"github.com/arloliu/fitsio/stats"
)

const (
	clipIterations = 5
	entropyBins    = 256
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print the header summary and pixel statistics of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := hdu.ReadFile(args[0], a.hduOptions()...)
			if err != nil {
				return err
			}
			name := hdu.FileName(args[0])
			a.printInfo(name, img)

			return a.printFileDigest(name)
		},
	}
}

func (a *app) printInfo(name string, img *hdu.Image) {
	ih := img.Header

	a.printf("%-10s %s\n", "file", name)
	a.printf("%-10s %d (%s)\n", "bitpix", int(ih.BitPix), ih.BitPix)
	a.printf("%-10s %s\n", "axes", formatAxes(ih.Axes[:ih.NAxis]))
	a.printf("%-10s %g\n", "bscale", ih.BScale)
	a.printf("%-10s %g\n", "bzero", ih.BZero)
	if ih.CType[0] != "" || ih.CType[1] != "" {
		a.printf("%-10s %s %s\n", "ctype", ih.CType[0], ih.CType[1])
	}
	if img.History != nil {
		a.printf("%-10s %d lines\n", "history", img.History.Lines())
	}
	if img.Comment != nil {
		a.printf("%-10s %d lines\n", "comment", img.Comment.Lines())
	}
	a.printf("%-10s %s\n", "digest", hash.Hex(img.Digest))
	a.printf("%-10s %d\n", "pixels", len(img.Pixels))

	summary, err := stats.Summarize(img.Pixels)
	if err != nil {
		return
	}
	a.printf("%-10s %g\n", "min", summary.Min)
	a.printf("%-10s %g\n", "max", summary.Max)
	a.printf("%-10s %g\n", "mean", summary.Mean)
	a.printf("%-10s %g\n", "sigma", summary.Sigma)
	a.printf("%-10s %g\n", "clipped", stats.SigmaClip(img.Pixels, clipIterations))
	a.printf("%-10s %g\n", "skewness", summary.Skewness)
	a.printf("%-10s %g\n", "kurtosis", summary.Kurtosis)

	if summary.Max > summary.Min {
		if h, err := stats.Entropy(img.Pixels, (summary.Max-summary.Min)/entropyBins); err == nil {
			a.printf("%-10s %g bits\n", "entropy", h)
		}
	}
}

// printFileDigest prints the digest of the file as stored, including any
// transport compression.
func (a *app) printFileDigest(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	sum, err := hash.DigestReader(f)
	if err != nil {
		return err
	}
	a.printf("%-10s %s\n", "file-sum", hash.Hex(sum))

	return nil
}

func formatAxes(axes []int) string {
	return strings.Join(lo.Map(axes, func(n int, _ int) string {
		return strconv.Itoa(n)
	}), " x ")
}
