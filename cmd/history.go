package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/cel"
	"github.com/oakwood-commons/lawlens/internal/completion"
	"github.com/oakwood-commons/lawlens/internal/limiter"
	"github.com/oakwood-commons/lawlens/internal/render"
)

// compileWhere returns nil for an empty expression.
func compileWhere(expr string) (*cel.Filter, error) {
	if expr == "" {
		return nil, nil
	}
	ev, err := cel.NewEvaluator()
	if err != nil {
		return nil, err
	}
	f, err := ev.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid --where: %w", err)
	}
	return f, nil
}

// addLimitFlags binds --limit, --offset and --tail for a list command.
func addLimitFlags(cmd *cobra.Command, cfg *limiter.Config) {
	cmd.Flags().IntVar(&cfg.Limit, "limit", 0, "show at most this many entries")
	cmd.Flags().IntVar(&cfg.Offset, "offset", 0, "skip this many entries first")
	cmd.Flags().IntVar(&cfg.Tail, "tail", 0, "show only the last N entries (oldest first for history)")
}

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the search history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var where string
	var window limiter.Config
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent searches, newest first",
		Long: `List prints the saved queries, newest first. --where takes a CEL
predicate over each entry, bound to _ as {query, rank} where rank 0 is
the most recent search.`,
		Example: "\n  lawlens history list\n  lawlens history list --where '_.rank < 3'\n  lawlens history list --where '_.query.contains(\"theft\")' -o json\n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := window.Validate(); err != nil {
				return err
			}
			filter, err := compileWhere(where)
			if err != nil {
				return err
			}
			entries, err := cel.Select(filter, a.store.History(cmd.Context()), cel.HistoryRecord)
			if err != nil {
				return err
			}
			entries = limiter.Apply(window, entries)
			if entries == nil {
				entries = []string{}
			}
			w := cmd.OutOrStdout()
			if ok, err := writeStructured(w, runOf(cmd).OutputFormat, "history", entries); ok {
				return err
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintln(w, "No search history")
				return err
			}
			for i, q := range entries {
				if _, err := fmt.Fprintf(w, "%2d. %s\n", i+1, render.SanitizeLine(q)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&where, "where", "", "CEL predicate over {query, rank}")
	addLimitFlags(listCmd, &window)
	_ = listCmd.RegisterFlagCompletionFunc("where", completeWhere(completion.HistoryFields))

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := a.store.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Search history cleared")
			return err
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}
