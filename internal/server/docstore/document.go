package docstore

import (
	"encoding/json"
	"time"
)

// Document is a snapshot of one stored document.
type Document struct {
	Path   string
	ID     string
	Fields map[string]any
}

// Has reports whether the field is present (even if null).
func (d *Document) Has(key string) bool {
	_, ok := d.Fields[key]
	return ok
}

func (d *Document) String(key string) string      { return AsString(d.Fields[key]) }
func (d *Document) Float(key string) float64      { return AsFloat(d.Fields[key]) }
func (d *Document) Bool(key string) bool          { return AsBool(d.Fields[key]) }
func (d *Document) Time(key string) time.Time     { return AsTime(d.Fields[key]) }
func (d *Document) Map(key string) map[string]any { return AsMap(d.Fields[key]) }
func (d *Document) Array(key string) []any        { return AsArray(d.Fields[key]) }

// AsString returns v if it is a string, "" otherwise.
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsFloat converts any numeric representation a backend may return.
func AsFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// AsTime accepts time.Time or an RFC 3339 string (JSON backends).
func AsTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	default:
		return time.Time{}
	}
}

func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func AsArray(v any) []any {
	a, _ := v.([]any)
	return a
}
