package types

import "fmt"

// Field is a single key/value pair of a Record
type Field struct {
	Key   string
	Value interface{}
}

// Record represents one item of a collection: an ordered set of fields.
// Key order is significant and is preserved by projection and by the codecs.
type Record []Field

// NewRecord creates a record from the given fields, in order
func NewRecord(fields ...Field) Record {
	r := make(Record, 0, len(fields))
	for _, f := range fields {
		r = r.Set(f.Key, f.Value)
	}
	return r
}

// R builds a record from alternating keys and values:
//
//	types.R("id", 1, "name", "Maria")
//
// It panics on an odd number of arguments or a non-string key.
func R(pairs ...interface{}) Record {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("types.R: odd number of arguments (%d)", len(pairs)))
	}
	r := make(Record, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("types.R: key at position %d is %T, not string", i, pairs[i]))
		}
		r = r.Set(key, pairs[i+1])
	}
	return r
}

// Get returns the value stored under key and whether the key exists
func (r Record) Get(key string) (interface{}, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether the record contains key
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the field names in record order
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r)
}

// Set replaces the value of an existing key in place, or appends a new field.
// The updated record is returned, like append.
func (r Record) Set(key string, value interface{}) Record {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}

// Clone returns a shallow copy that shares no backing array with r
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Map returns the fields as an unordered map
func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r))
	for _, f := range r {
		m[f.Key] = f.Value
	}
	return m
}
