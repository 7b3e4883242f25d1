package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect lawlens configuration",
		Annotations: map[string]string{wiringAnnotation: wireConfig},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var defaults bool
	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "Show the merged configuration (defaults, file, environment, flags)",
		Example: "\n  lawlens config view\n  lawlens config view -o json\n  lawlens config view --defaults > ~/.config/lawlens/config.yaml\n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if defaults {
				_, err := w.Write(config.DefaultConfigYAML())
				return err
			}
			format := runOf(cmd).OutputFormat
			if format == formatText {
				format = formatYAML
			}
			if ok, err := writeStructured(w, format, "", a.cfg); ok {
				return err
			}
			return fmt.Errorf("unsupported output %q for config view", format)
		},
	}
	viewCmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults with comments")

	configCmd.AddCommand(viewCmd)
	return configCmd
}
