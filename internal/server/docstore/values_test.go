package docstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFields(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	local := time.Date(2024, 3, 1, 14, 0, 0, 0, time.FixedZone("EET", 2*3600))
	s := "Aldi"
	var nilStr *string

	got, err := canonicalFields(map[string]any{
		"int":     5,
		"int64":   int64(7),
		"float32": float32(1.5),
		"macros":  map[string]float64{"protein": 10},
		"tags":    []string{"a", "b"},
		"ts":      ServerTimestamp,
		"local":   local,
		"store":   &s,
		"noStore": nilStr,
		"nested":  []any{map[string]any{"addedAt": ServerTimestamp}},
		"null":    nil,
	}, now)
	require.NoError(t, err)

	want := map[string]any{
		"int":     float64(5),
		"int64":   float64(7),
		"float32": float64(1.5),
		"macros":  map[string]any{"protein": float64(10)},
		"tags":    []any{"a", "b"},
		"ts":      now,
		"local":   local.UTC(),
		"store":   "Aldi",
		"noStore": nil,
		"nested":  []any{map[string]any{"addedAt": now}},
		"null":    nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("canonicalFields mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonical_Rejects(t *testing.T) {
	_, err := canonical(struct{}{}, time.Now())
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)

	_, err = canonical(map[int]string{1: "x"}, time.Now())
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)

	_, err = canonicalFields(map[string]any{"": 1}, time.Now())
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestFilterOut(t *testing.T) {
	arr := []any{
		map[string]any{"itemName": "milk", "quantity": float64(2)},
		map[string]any{"itemName": "eggs", "quantity": float64(12)},
		"not a map",
		map[string]any{"itemName": "milk", "quantity": float64(1)},
	}

	got := filterOut(arr, map[string]any{"itemName": "milk"})
	want := []any{
		map[string]any{"itemName": "eggs", "quantity": float64(12)},
		"not a map",
	}
	assert.Equal(t, want, got)

	got = filterOut(arr, map[string]any{"itemName": "milk", "quantity": float64(1)})
	assert.Len(t, got, 3)
}

func TestDocumentAccessors(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d := &Document{Fields: map[string]any{
		"name":    "Oats",
		"count":   int32(3),
		"num":     json.Number("2.5"),
		"ok":      true,
		"at":      ts,
		"atStr":   ts.Format(time.RFC3339Nano),
		"macros":  map[string]any{"fat": 1.0},
		"items":   []any{1.0},
		"missing": nil,
	}}

	assert.Equal(t, "Oats", d.String("name"))
	assert.Equal(t, "", d.String("count"))
	assert.Equal(t, 3.0, d.Float("count"))
	assert.Equal(t, 2.5, d.Float("num"))
	assert.True(t, d.Bool("ok"))
	assert.True(t, d.Time("at").Equal(ts))
	assert.True(t, d.Time("atStr").Equal(ts))
	assert.True(t, d.Time("name").IsZero())
	assert.Equal(t, map[string]any{"fat": 1.0}, d.Map("macros"))
	assert.Equal(t, []any{1.0}, d.Array("items"))
	assert.True(t, d.Has("missing"))
	assert.False(t, d.Has("absent"))
	assert.Nil(t, d.Array("absent"))
}
