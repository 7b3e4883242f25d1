package cmd

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/cel"
	"github.com/oakwood-commons/lawlens/internal/completion"
	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/limiter"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/pkg/loader"
)

func newBookmarksCmd() *cobra.Command {
	bookmarksCmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bookmark"},
		Short:   "Manage saved results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var where string
	var window limiter.Config
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks in the order they were saved",
		Long: `List prints saved results. --where takes a CEL predicate bound to _
as {title, ipc, bns, rank}.`,
		Example: "\n  lawlens bookmarks list\n  lawlens bookmarks list --where '_.title.lowerAscii().contains(\"murder\")'\n",
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
			items, err := cel.Select(filter, a.store.Bookmarks(cmd.Context()), cel.BookmarkRecord)
			if err != nil {
				return err
			}
			items = limiter.Apply(window, items)
			if items == nil {
				items = []law.Bookmark{}
			}
			w := cmd.OutOrStdout()
			if ok, err := writeStructured(w, runOf(cmd).OutputFormat, "bookmarks", items); ok {
				return err
			}
			if len(items) == 0 {
				_, err := fmt.Fprintln(w, "No bookmarks")
				return err
			}
			ipcWidth := len("IPC")
			for _, b := range items {
				ipcWidth = max(ipcWidth, runewidth.StringWidth(render.SanitizeLine(b.IPC)))
			}
			for _, b := range items {
				ipc := render.SanitizeLine(b.IPC)
				line := fmt.Sprintf("IPC %s%s  BNS %s  %s", ipc,
					strings.Repeat(" ", ipcWidth-runewidth.StringWidth(ipc)),
					render.SanitizeLine(b.BNS), render.SanitizeLine(b.Title))
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&where, "where", "", "CEL predicate over {title, ipc, bns, rank}")
	addLimitFlags(listCmd, &window)
	_ = listCmd.RegisterFlagCompletionFunc("where", completeWhere(completion.BookmarkFields))

	var title string
	addCmd := &cobra.Command{
		Use:     "add <query>",
		Short:   "Look up a query and bookmark the result",
		Example: "\n  lawlens bookmarks add murder\n  lawlens bookmarks add 103 --mode bns\n",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			res, err := lookup(cmd, a, strings.Join(args, " "), title)
			if err != nil {
				return err
			}
			added, err := a.store.AddBookmark(cmd.Context(), law.BookmarkFromResult(*res))
			if err != nil {
				return err
			}
			msg := "Already bookmarked!"
			if added {
				msg = "Bookmarked successfully!"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (IPC %s)\n", msg,
				render.SanitizeLine(res.Title), render.SanitizeLine(res.IPCSections))
			return err
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "suggestion title the query was picked from")

	removeCmd := &cobra.Command{
		Use:     "remove <ipc>",
		Aliases: []string{"rm"},
		Short:   "Remove the bookmark with the given IPC sections",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			removed, err := a.store.RemoveBookmark(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no bookmark for IPC %s", args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark IPC %s\n", args[0])
			return err
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Add bookmarks from a JSON, NDJSON, YAML or TOML file",
		Long: `Import reads bookmarks written by "bookmarks list -o json|yaml|toml" or
by hand. Entries whose IPC is already bookmarked are skipped.`,
		Example: "\n  lawlens bookmarks list -o yaml > saved.yaml\n  lawlens bookmarks import saved.yaml\n  cat saved.json | lawlens bookmarks import -\n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			items, err := loader.LoadBookmarksFile(args[0], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			added := 0
			for _, b := range items {
				ok, err := a.store.AddBookmark(cmd.Context(), b)
				if err != nil {
					return err
				}
				if ok {
					added++
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmarks (%d already saved)\n", added, len(items)-added)
			return err
		},
	}

	bookmarksCmd.AddCommand(listCmd, addCmd, removeCmd, importCmd)
	return bookmarksCmd
}
