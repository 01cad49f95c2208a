package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitsio/hdu"
	"github.com/arloliu/fitsio/section"
)

func newHeaderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header FILE",
		Short: "Print the populated header cards of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := hdu.ReadFile(args[0], a.hduOptions()...)
			if err != nil {
				return err
			}

			for _, line := range cardLines(img.Cards) {
				a.printf("%s\n", line)
			}

			return nil
		},
	}
}

// cardLines returns the non-blank cards before END followed by END, trailing
// spaces removed.
func cardLines(h *section.HeaderBuffer) []string {
	var lines []string
	for _, c := range h.Cards() {
		if c.IsBlank() {
			continue
		}
		lines = append(lines, strings.TrimRight(c.String(), " "))
	}

	return append(lines, section.KeywordEnd)
}
