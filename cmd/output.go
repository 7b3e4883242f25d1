package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/ui"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
	formatHTML = "html"
	formatPDF  = "pdf"
)

// writeStructured encodes v in the run's output format. TOML documents must
// be tables, so lists are wrapped under key. It reports false for text output.
func writeStructured(w io.Writer, format, key string, v any) (bool, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		return true, enc.Close()
	case formatTOML:
		if key != "" {
			v = map[string]any{key: v}
		}
		data, err := toml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(data)
		return true, err
	}
	return false, nil
}

// palette colours text output only when it goes to a terminal.
func (a *app) palette(cmd *cobra.Command) render.Palette {
	if runOf(cmd).NoColor || !isTerminal(cmd.OutOrStdout()) {
		return render.Palette{}
	}
	return ui.TerminalPalette(a.theme, false)
}
