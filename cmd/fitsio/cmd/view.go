package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arloliu/fitsio/hdu"
)

const defaultViewHeight = 20

func newViewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Page through the header cards of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := hdu.ReadFile(args[0], a.hduOptions()...)
			if err != nil {
				return err
			}

			viewer := newHeaderViewer(hdu.FileName(args[0]), cardLines(img.Cards))
			program := tea.NewProgram(viewer,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)

			return program.Start()
		},
	}
}

// headerViewer is a read-only pager over header card lines.
type headerViewer struct {
	title  string
	lines  []string
	offset int
	height int
}

func newHeaderViewer(title string, lines []string) headerViewer {
	return headerViewer{title: title, lines: lines, height: defaultViewHeight}
}

func (v headerViewer) Init() tea.Cmd {
	return nil
}

func (v headerViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.height = max(1, msg.Height-3)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "down", "j":
			v.offset++
		case "up", "k":
			v.offset--
		case "pgdown", " ", "space", "f":
			v.offset += v.height
		case "pgup", "b":
			v.offset -= v.height
		case "home", "g":
			v.offset = 0
		case "end", "G":
			v.offset = len(v.lines)
		}
	}
	v.offset = max(0, min(v.offset, len(v.lines)-v.height))

	return v, nil
}

func (v headerViewer) View() string {
	var sb strings.Builder
	sb.WriteString(v.title + "\n\n")

	end := min(len(v.lines), v.offset+v.height)
	for _, line := range v.lines[v.offset:end] {
		sb.WriteString(line + "\n")
	}

	fmt.Fprintf(&sb, "\ncards %d-%d of %d  (j/k scroll, q quit)\n", v.offset+1, end, len(v.lines))

	return sb.String()
}
