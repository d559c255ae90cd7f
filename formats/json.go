package formats

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/fluentsql/types"
)

// JSON renders records as an indented JSON array, keeping field order
var JSON = &RecordFormat{
	Name: "json",
	Render: func(w io.Writer, records []types.Record) error {
		if records == nil {
			records = []types.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	},
}

func init() {
	mustRegister(JSON)
}
