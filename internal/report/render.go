// Package report renders audit events to their output formats and writes
// them to a file or standard output.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/clustertools/confaudit/internal/audit"
)

// Format selects the output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Line renders one audit event in the classic single-line log format.
func Line(e audit.Event) string {
	if e.Action == audit.ActionChanged {
		return fmt.Sprintf("%s: version %d - %s - %s - %s => %s",
			e.Type, e.Version, e.Action, e.Key, e.OldValue, e.Value)
	}
	return fmt.Sprintf("%s: version %d - %s - %s - %s",
		e.Type, e.Version, e.Action, e.Key, e.Value)
}

// Render writes the events to w in the given format. An empty format means
// text.
func Render(w io.Writer, events []audit.Event, format Format) error {
	switch format {
	case FormatText, "":
		for _, e := range events {
			if _, err := fmt.Fprintln(w, Line(e)); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return renderJSON(w, events)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(events))
		return err
	case FormatHTML:
		return renderHTML(w, events)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Write renders events to the destination. An empty dest writes to stdout;
// otherwise dest is created or truncated.
func Write(events []audit.Event, dest string, format Format) error {
	if dest == "" {
		return Render(os.Stdout, events, format)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("opening output %s: %w", dest, err)
	}
	if err := Render(f, events, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
