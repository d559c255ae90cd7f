package formats

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/fluentsql/types"
)

// PlainText renders records as aligned text columns.
// The header is the union of all record keys in first-seen order; fields a
// record does not have are left blank. Nothing is written for no records.
var PlainText = &RecordFormat{
	Name: "table",
	Render: func(w io.Writer, records []types.Record) error {
		if len(records) == 0 {
			return nil
		}

		cols := columns(records)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		if err := writeRow(tw, cols); err != nil {
			return err
		}
		for _, r := range records {
			if err := writeRow(tw, cells(r, cols)); err != nil {
				return err
			}
		}

		return tw.Flush()
	},
}

func init() {
	mustRegister(PlainText)
}

// cellFlattener keeps tabs and newlines inside cells from breaking the columns
var cellFlattener = strings.NewReplacer("\t", " ", "\n", " ")

// writeRow writes one tab-separated line
func writeRow(w io.Writer, values []string) error {
	flat := make([]string, len(values))
	for i, v := range values {
		flat[i] = cellFlattener.Replace(v)
	}
	_, err := io.WriteString(w, strings.Join(flat, "\t")+"\n")
	return err
}
