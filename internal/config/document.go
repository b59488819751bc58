package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when a candidate document is not a JSON object.
var ErrNotObject = errors.New("settings document is not a JSON object")

// Document is a candidate settings document whose fields are still raw JSON.
// It carries key presence, which the typed domain.Settings cannot.
type Document map[string]json.RawMessage

// ParseDocument decodes data into a Document. Anything other than a JSON
// object is rejected.
func ParseDocument(data []byte) (Document, error) {
	if jsonKind(data) != '{' {
		if !json.Valid(data) {
			return nil, fmt.Errorf("decode settings: invalid JSON")
		}
		return nil, ErrNotObject
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return doc, nil
}

// DocumentOf converts any JSON-marshalable value into a Document. It returns
// nil when v does not marshal to an object.
func DocumentOf(v any) Document {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil
	}
	return doc
}

// HasVersion reports whether the document carries a truthy version tag.
func (d Document) HasVersion() bool {
	raw, ok := d["version"]
	if !ok {
		return false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch version := v.(type) {
	case string:
		return version != ""
	case float64:
		return version != 0
	case bool:
		return version
	case nil:
		return false
	default:
		return true
	}
}

// present reports whether key exists with a non-null value.
func (d Document) present(key string) bool {
	raw, ok := d[key]
	return ok && jsonKind(raw) != 'n'
}

// jsonKind returns the first significant byte of a JSON value: '{', '[', '"',
// 'n' for null, 't'/'f' for booleans, or a digit/'-' for numbers.
func jsonKind(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Set replaces key with the JSON encoding of v.
func (d Document) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	d[key] = raw
	return nil
}
