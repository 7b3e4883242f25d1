package cmd

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/search"
)

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "suggest <query>",
		Short:   "List autocomplete suggestions for a partial query",
		Example: "\n  lawlens suggest mur\n  lawlens suggest 30 --mode ipc -o json\n",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(args, " "))
			if !search.Eligible(query) {
				return fmt.Errorf("query must be at least %d characters", search.MinQueryLength)
			}
			items, err := a.client.Suggest(cmd.Context(), query, a.mode)
			if err != nil {
				return fmt.Errorf("%s (%w)", search.NetworkErrorMessage, err)
			}
			if items == nil {
				items = []law.Suggestion{}
			}
			w := cmd.OutOrStdout()
			if ok, err := writeStructured(w, runOf(cmd).OutputFormat, "suggestions", items); ok {
				return err
			}
			if len(items) == 0 {
				_, err := fmt.Fprintln(w, search.NoMatchesText)
				return err
			}

			p := a.palette(cmd)
			titleWidth := 0
			for _, s := range items {
				titleWidth = max(titleWidth, runewidth.StringWidth(render.SanitizeLine(s.Title)))
			}
			for _, s := range items {
				title := render.SanitizeLine(s.Title)
				pad := strings.Repeat(" ", titleWidth-runewidth.StringWidth(title))
				line := render.HighlightTerminal(search.Highlight(title, query), p) + pad +
					"  " + renderMuted(p, fmt.Sprintf("IPC: %s | BNS: %s", render.SanitizeLine(s.IPC), render.SanitizeLine(s.BNS)))
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func renderMuted(p render.Palette, s string) string {
	if p.Muted == nil {
		return s
	}
	return p.Muted(s)
}
