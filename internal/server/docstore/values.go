package docstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// canonicalFields canonicalizes a field map, resolving ServerTimestamp to now.
func canonicalFields(fields map[string]any, now time.Time) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "" {
			return nil, fmt.Errorf("%w: empty field name", common.ErrorInvalidArgument)
		}
		c, err := canonical(v, now)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = c
	}
	return out, nil
}

// canonical returns a deep copy of v using only nil, bool, string, float64,
// time.Time, map[string]any and []any.
func canonical(v any, now time.Time) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case serverTimestamp:
		return now, nil
	case bool, string:
		return x, nil
	case time.Time:
		return x.UTC(), nil
	case *string:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case *float64:
		if x == nil {
			return nil, nil
		}
		return *x, nil
	case map[string]any:
		return canonicalFields(x, now)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			c, err := canonical(e, now)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", common.ErrorInvalidArgument, rv.Type().Key())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			c, err := canonical(iter.Value().Interface(), now)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = c
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			c, err := canonical(rv.Index(i).Interface(), now)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: unsupported value type %T", common.ErrorInvalidArgument, v)
}

// canonicalArray canonicalizes an array of entries.
func canonicalArray(values []any, now time.Time) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		c, err := canonical(v, now)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// matches reports whether elem is a map holding every key of match with an
// equal canonical value. Both sides must already be canonical.
func matches(elem any, match map[string]any) bool {
	m, ok := elem.(map[string]any)
	if !ok {
		return false
	}
	for k, want := range match {
		got, ok := m[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// filterOut returns the elements of arr not matching match, in order.
func filterOut(arr []any, match map[string]any) []any {
	kept := make([]any, 0, len(arr))
	for _, e := range arr {
		if !matches(e, match) {
			kept = append(kept, e)
		}
	}
	return kept
}

func requireMatch(match map[string]any) error {
	if len(match) == 0 {
		return fmt.Errorf("%w: empty match", common.ErrorInvalidArgument)
	}
	return nil
}

func requireFields(fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields", common.ErrorInvalidArgument)
	}
	return nil
}

func requireField(field string) error {
	if field == "" {
		return fmt.Errorf("%w: empty field name", common.ErrorInvalidArgument)
	}
	return nil
}
