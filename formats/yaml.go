package formats

import (
	"io"

	"github.com/arthur-debert/fluentsql/types"
	"gopkg.in/yaml.v3"
)

// YAML renders records as a YAML sequence of mappings, keeping field order
var YAML = &RecordFormat{
	Name: "yaml",
	Render: func(w io.Writer, records []types.Record) error {
		if records == nil {
			records = []types.Record{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	mustRegister(YAML)
}
