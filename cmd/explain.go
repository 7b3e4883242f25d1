package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/lawlens/internal/client"
	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/search"
	"github.com/oakwood-commons/lawlens/pkg/logger"
)

// lookupError is a query the server answered without a result.
type lookupError struct {
	query   string
	message string
}

func (e *lookupError) Error() string {
	return fmt.Sprintf("%s: %s", e.query, e.message)
}

// pdfRenderer is swapped in tests; the real one needs a Chrome binary.
var pdfRenderer = render.PDF

func newExplainCmd() *cobra.Command {
	var title, outPath string
	cmd := &cobra.Command{
		Use:   "explain <query>",
		Short: "Explain a legal term or section number",
		Long: `Explain sends the query to the server and prints the result. Section
numbers are matched in the current --mode. Use -o html or -o pdf to export
the printable page.`,
		Example: "\n  lawlens explain murder\n  lawlens explain 103 --mode bns\n  lawlens explain 'Murder' --title 'Murder' -o json\n  lawlens explain 420 -o pdf --out cheating.pdf\n",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			return explainTo(cmd, a, strings.Join(args, " "), title, outPath)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "suggestion title the query was picked from")
	cmd.Flags().StringVar(&outPath, "out", "", "file for html or pdf output (pdf defaults to a name derived from the title)")
	return cmd
}

// lookup records the query in history (unless --no-history) and asks the
// server for its explanation.
func lookup(cmd *cobra.Command, a *app, query, title string) (*law.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(search.EmptyQueryMessage)
	}
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)
	if !runOf(cmd).Ephemeral {
		if _, err := a.store.AddHistory(ctx, query); err != nil {
			lgr.Error(err, "record history failed", "query", query)
		}
	}

	res, err := a.client.Explain(ctx, query, title, a.mode)
	if err == nil {
		return res, nil
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = search.NoMatchFallback
		}
		return nil, &lookupError{query: query, message: msg}
	}
	lgr.V(1).Info("explain request failed", "query", query, "error", err.Error())
	return nil, fmt.Errorf("%s (%w)", search.NetworkErrorMessage, err)
}

func explainTo(cmd *cobra.Command, a *app, query, title, outPath string) error {
	w := cmd.OutOrStdout()
	res, err := lookup(cmd, a, query, title)
	if err != nil {
		var le *lookupError
		if errors.As(err, &le) && runOf(cmd).OutputFormat == formatText {
			if werr := render.WriteErrorText(w, render.ErrorView(le.message), a.width, a.palette(cmd)); werr != nil {
				return werr
			}
		}
		return err
	}

	view := render.BuildView(*res)
	switch runOf(cmd).OutputFormat {
	case formatHTML:
		return writeHTMLExport(cmd, a, view, outPath)
	case formatPDF:
		return writePDFExport(cmd, a, view, outPath)
	}
	if ok, err := writeStructured(w, runOf(cmd).OutputFormat, "", res); ok {
		return err
	}

	if err := render.WriteText(w, view, a.width, a.palette(cmd)); err != nil {
		return err
	}
	if section := res.PrimarySection(); section != "" {
		_, err = fmt.Fprintf(w, "\nShare: %s\n", a.client.ShareLink(section))
	}
	return err
}

func writeHTMLExport(cmd *cobra.Command, a *app, view render.ResultView, outPath string) error {
	if outPath == "" {
		return render.WriteHTML(cmd.OutOrStdout(), view, a.theme)
	}
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, view, a.theme); err != nil {
		return err
	}
	return saveExport(cmd.ErrOrStderr(), outPath, buf.Bytes())
}

func writePDFExport(cmd *cobra.Command, a *app, view render.ResultView, outPath string) error {
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, view, a.theme); err != nil {
		return err
	}
	data, err := pdfRenderer(cmd.Context(), buf.String())
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = render.ExportFilename(view.Title, formatPDF)
	}
	return saveExport(cmd.ErrOrStderr(), outPath, data)
}

func saveExport(notice io.Writer, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(notice, "Saved %s\n", path)
	return err
}

// ExitCode maps an Execute error to a process status: 0 on success, 2 when
// the server had no result for the query and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var le *lookupError
	if errors.As(err, &le) {
		return 2
	}
	return 1
}
