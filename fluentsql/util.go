package fluentsql

import "github.com/arthur-debert/fluentsql/types"

// undefined is the text an absent field stringifies to
const undefined = "undefined"

// fieldString returns the textual form of a record's field, or "undefined"
// when the record does not have it
func fieldString(record types.Record, field string) (string, bool) {
	value, ok := record.Get(field)
	if !ok {
		return undefined, false
	}
	return types.Text(value), true
}
