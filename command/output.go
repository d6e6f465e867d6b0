package command

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q: want table, json or yaml", s)
	}
}

// render writes data in the env's format. table is only called for
// FormatTable and writes tab-separated rows.
func render(w io.Writer, format Format, data any, table func(tw io.Writer)) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
)

// notice prints a confirmation for the user.
func notice(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

// failure prints a problem the user should know about but that does not stop
// the command.
func failure(w io.Writer, format string, args ...any) {
	failureColor.Fprintf(w, format+"\n", args...)
}
