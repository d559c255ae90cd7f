package fluentsql

import (
	"sort"

	"github.com/arthur-debert/fluentsql/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type sortEntry struct {
	record  types.Record
	key     string
	present bool
}

// sortRecords orders records ascending by the collated text of field.
// Records without the field go last; ties keep their current order.
func sortRecords(records []types.Record, field string, locale language.Tag) {
	if len(records) < 2 {
		return
	}

	entries := make([]sortEntry, len(records))
	for i, r := range records {
		key, present := fieldString(r, field)
		entries[i] = sortEntry{record: r, key: key, present: present}
	}

	// Collators keep internal buffers and are not safe to share
	collator := collate.New(locale)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.present || !b.present {
			return a.present && !b.present
		}
		return collator.CompareString(a.key, b.key) < 0
	})

	for i := range entries {
		records[i] = entries[i].record
	}
}
