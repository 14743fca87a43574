package report

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/clustertools/confaudit/internal/audit"
)

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Configuration audit</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f4f4f4; }
</style>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

// renderHTML renders the markdown report through goldmark and wraps it in a
// standalone page.
func renderHTML(w io.Writer, events []audit.Event) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	if _, err := fmt.Fprintf(w, htmlHeader); err != nil {
		return err
	}
	if err := md.Convert([]byte(Markdown(events)), w); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	_, err := io.WriteString(w, htmlFooter)
	return err
}
