package docstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 4, 10, 30, 0, 0, time.UTC)

func newTestMemoryStore() *MemoryStore {
	n := 0
	return NewMemoryStore(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()

	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{"email": "a@x", "onboarded": false}, Overwrite))
	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{"onboarded": true}, Merge))

	doc, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "a@x", doc.String("email"))
	assert.True(t, doc.Bool("onboarded"))

	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{"onboarded": false}, Overwrite))
	doc, err = s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.False(t, doc.Has("email"))
}

func TestMemoryStore_GetMissing(t *testing.T) {
	_, err := newTestMemoryStore().Get(context.Background(), "users/nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_Create(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()

	require.NoError(t, s.Create(ctx, "users/u1", map[string]any{"email": "first"}))
	err := s.Create(ctx, "users/u1", map[string]any{"email": "second"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	doc, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "first", doc.String("email"))
}

func TestMemoryStore_Add(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()

	id, err := s.Add(ctx, "users/u1/pantry", map[string]any{"name": "Oats", "createdAt": ServerTimestamp})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	doc, err := s.Get(ctx, "users/u1/pantry/"+id)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, doc.Time("createdAt"))

	_, err = s.Add(ctx, "users/u1", map[string]any{})
	assert.ErrorIs(t, err, common.ErrorInvalidPath)
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()

	err := s.Update(ctx, "users/u1/pantry/p1", map[string]any{"name": "x"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Create(ctx, "users/u1/pantry/p1", map[string]any{"name": "Oats", "calories": 100}))
	require.NoError(t, s.Update(ctx, "users/u1/pantry/p1", map[string]any{"calories": 150}))

	doc, err := s.Get(ctx, "users/u1/pantry/p1")
	require.NoError(t, err)
	assert.Equal(t, "Oats", doc.String("name"))
	assert.Equal(t, 150.0, doc.Float("calories"))

	assert.ErrorIs(t, s.Update(ctx, "users/u1/pantry/p1", nil), common.ErrorInvalidArgument)
}

func TestMemoryStore_ArrayOps(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()
	path := "users/u1/shoppingLists/l1"

	require.ErrorIs(t, s.ArrayAppend(ctx, path, "items", map[string]any{"itemName": "milk"}), common.ErrorNotFound)

	require.NoError(t, s.Create(ctx, path, map[string]any{"title": "Weekly"}))
	require.NoError(t, s.ArrayAppend(ctx, path, "items", map[string]any{"itemName": "milk", "quantity": 2, "addedAt": ServerTimestamp}))
	require.NoError(t, s.ArrayAppend(ctx, path, "items", map[string]any{"itemName": "eggs", "quantity": 12, "addedAt": ServerTimestamp}))
	require.NoError(t, s.ArrayAppend(ctx, path, "items", map[string]any{"itemName": "milk", "quantity": 1, "addedAt": ServerTimestamp}))

	doc, err := s.Get(ctx, path)
	require.NoError(t, err)
	items := doc.Array("items")
	require.Len(t, items, 3)
	assert.Equal(t, fixedNow, AsMap(items[0])["addedAt"])

	require.NoError(t, s.ArrayRemoveWhere(ctx, path, "items", map[string]any{"itemName": "milk"}))
	doc, err = s.Get(ctx, path)
	require.NoError(t, err)
	require.Len(t, doc.Array("items"), 1)
	assert.Equal(t, "eggs", AsMap(doc.Array("items")[0])["itemName"])

	require.NoError(t, s.ArrayRemoveWhere(ctx, path, "items", map[string]any{"itemName": "bread"}))
	doc, _ = s.Get(ctx, path)
	assert.Len(t, doc.Array("items"), 1)

	require.NoError(t, s.ArrayReplace(ctx, path, "items", []any{}))
	doc, _ = s.Get(ctx, path)
	assert.Empty(t, doc.Array("items"))

	require.NoError(t, s.Set(ctx, path, map[string]any{"title": "scalar"}, Merge))
	assert.ErrorIs(t, s.ArrayAppend(ctx, path, "title", "x"), common.ErrorInvalidArgument)
	assert.ErrorIs(t, s.ArrayRemoveWhere(ctx, path, "items", nil), common.ErrorInvalidArgument)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()
	require.NoError(t, s.Create(ctx, "users/u1/pantry/p1", map[string]any{"macros": map[string]any{"fat": 1}}))

	doc, err := s.Get(ctx, "users/u1/pantry/p1")
	require.NoError(t, err)
	doc.Map("macros")["fat"] = 99.0

	doc, err = s.Get(ctx, "users/u1/pantry/p1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, doc.Map("macros")["fat"])
}

func TestMemoryStore_ConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()
	path := "users/u1/shoppingLists/l1"
	require.NoError(t, s.Create(ctx, path, map[string]any{"items": []any{}}))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.ArrayAppend(ctx, path, "items", map[string]any{"itemName": fmt.Sprintf("item-%d", i)})
		}(i)
	}
	wg.Wait()

	doc, err := s.Get(ctx, path)
	require.NoError(t, err)
	assert.Len(t, doc.Array("items"), n)
}

func TestMemoryStore_InvalidPaths(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore()

	assert.ErrorIs(t, s.Set(ctx, "users", map[string]any{}, Overwrite), common.ErrorInvalidPath)
	assert.ErrorIs(t, s.Create(ctx, "users/u1/pantry", map[string]any{}), common.ErrorInvalidPath)
	assert.ErrorIs(t, s.ArrayAppend(ctx, "users/u1/pantry", "items", 1), common.ErrorInvalidPath)
	_, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, common.ErrorInvalidPath)
}
