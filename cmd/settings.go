package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/law"
)

func newSettingsCmd() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change the persisted toggles (autocomplete, voiceSearch)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	getCmd := &cobra.Command{
		Use:       "get [name]",
		Short:     "Show one setting or all of them",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: law.SettingNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			s := a.store.Settings(cmd.Context())
			if len(args) == 1 {
				v, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if ok, err := writeStructured(cmd.OutOrStdout(), runOf(cmd).OutputFormat, "", map[string]bool{args[0]: v}); ok {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			}
			return printSettings(cmd, s)
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <name> <true|false>",
		Short:     "Set a toggle",
		Args:      cobra.ExactArgs(2),
		ValidArgs: law.SettingNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			v, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q for %s (expected true or false)", args[1], args[0])
			}
			s, err := a.store.SetSetting(cmd.Context(), args[0], v)
			if err != nil {
				return err
			}
			return printSettings(cmd, s)
		},
	}

	toggleCmd := &cobra.Command{
		Use:       "toggle <name>",
		Short:     "Flip a toggle",
		Args:      cobra.ExactArgs(1),
		ValidArgs: law.SettingNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			s, err := a.store.ToggleSetting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, _ := s.Get(args[0])
			state := "Disabled"
			if v {
				state = "Enabled"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], state)
			return err
		},
	}

	settingsCmd.AddCommand(getCmd, setCmd, toggleCmd)
	return settingsCmd
}

func printSettings(cmd *cobra.Command, s law.Settings) error {
	w := cmd.OutOrStdout()
	if ok, err := writeStructured(w, runOf(cmd).OutputFormat, "", s); ok {
		return err
	}
	for _, name := range law.SettingNames {
		v, _ := s.Get(name)
		if _, err := fmt.Fprintf(w, "%s: %t\n", name, v); err != nil {
			return err
		}
	}
	return nil
}
