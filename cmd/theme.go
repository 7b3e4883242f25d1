package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/law"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the saved color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(law.ThemeLight), string(law.ThemeDark), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var theme law.Theme
			switch {
			case len(args) == 0:
				theme = a.store.Theme(ctx)
			case args[0] == "toggle":
				if theme, err = a.store.ToggleTheme(ctx); err != nil {
					return err
				}
			default:
				if theme, err = law.ParseTheme(args[0]); err != nil {
					return err
				}
				if err := a.store.SetTheme(ctx, theme); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), theme)
			return err
		},
	}
}
