package formats

import (
	"io"
	"strings"

	"github.com/arthur-debert/fluentsql/types"
)

// markdownEscaper keeps cell text from ending a table cell or row
var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Markdown renders records as a GitHub-flavored markdown table.
// Nothing is written for no records.
var Markdown = &RecordFormat{
	Name: "markdown",
	Render: func(w io.Writer, records []types.Record) error {
		if len(records) == 0 {
			return nil
		}

		cols := columns(records)
		var b strings.Builder

		writeMarkdownRow(&b, cols)
		separator := make([]string, len(cols))
		for i := range separator {
			separator[i] = "---"
		}
		writeMarkdownRow(&b, separator)

		for _, r := range records {
			writeMarkdownRow(&b, cells(r, cols))
		}

		_, err := io.WriteString(w, b.String())
		return err
	},
}

func init() {
	mustRegister(Markdown)
}

func writeMarkdownRow(b *strings.Builder, values []string) {
	b.WriteString("|")
	for _, v := range values {
		b.WriteString(" ")
		b.WriteString(markdownEscaper.Replace(v))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
