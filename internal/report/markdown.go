package report

import (
	"fmt"
	"strings"

	"github.com/clustertools/confaudit/internal/audit"
)

// Markdown renders the events as a GFM document with one table per version.
// Events are expected in version order, as produced by the diff engine.
func Markdown(events []audit.Event) string {
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Configuration audit: %s\n", events[0].Type)

	started := false
	var current int64
	for _, e := range events {
		if !started || e.Version != current {
			fmt.Fprintf(&b, "\n## Version %d\n\n", e.Version)
			b.WriteString("| Action | Key | Old value | New value |\n")
			b.WriteString("| --- | --- | --- | --- |\n")
			current = e.Version
			started = true
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			e.Action, mdCell(e.Key), mdCell(e.OldValue), mdCell(e.Value))
	}

	return b.String()
}

// mdCell escapes characters that would break a GFM table cell.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
