package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// RunModel starts the search TUI. Width/height of 0 are auto-detected from
// the terminal, falling back to 80x24.
func RunModel(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if opts.Width <= 0 {
				opts.Width = w
			}
			if opts.Height <= 0 {
				opts.Height = h
			}
		}
	}

	m := NewModel(ctx, opts)
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	_, err := tea.NewProgram(m, progOpts...).Run()
	return err
}
