package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the record as a JSON object, keeping field order.
// NaN and infinite floats, which JSON cannot hold, are written as the
// strings Text gives them ("NaN", "Infinity", "-Infinity").
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v := f.Value
		if isNonFinite(v) {
			v = Text(v)
		}
		value, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object into the record, keeping field order.
// Integral numbers decode to int64, other numbers to float64.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	out := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out = out.Set(key, normalizeJSONValue(value))
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

// normalizeJSONValue converts json.Number values to int64 or float64
func normalizeJSONValue(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []interface{}:
		for i := range v {
			v[i] = normalizeJSONValue(v[i])
		}
		return v
	case map[string]interface{}:
		for k := range v {
			v[k] = normalizeJSONValue(v[k])
		}
		return v
	default:
		return value
	}
}

// MarshalYAML renders the record as a YAML mapping node, keeping field order
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r {
		var key, value yaml.Node
		if err := key.Encode(f.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// UnmarshalYAML reads a YAML mapping into the record, keeping field order
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: record must be a mapping", node.Line)
	}

	out := make(Record, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("line %d: record key: %w", node.Content[i].Line, err)
		}

		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: field %q: %w", node.Content[i+1].Line, key, err)
		}
		out = out.Set(key, normalizeYAMLValue(value))
	}

	*r = out
	return nil
}

// normalizeYAMLValue widens int to int64 so both codecs agree on integer types
func normalizeYAMLValue(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return int64(v)
	case []interface{}:
		for i := range v {
			v[i] = normalizeYAMLValue(v[i])
		}
		return v
	default:
		return value
	}
}

// DecodeJSON reads a collection from a JSON array of objects.
// Empty input yields an empty collection.
func DecodeJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to parse JSON collection: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// DecodeYAML reads a collection from a YAML sequence of mappings.
// Empty input yields an empty collection.
func DecodeYAML(r io.Reader) ([]Record, error) {
	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML collection: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
