// Package docstore is the document store adapter: typed read/write/update
// primitives over a hierarchical collection/document namespace.
//
// Paths alternate collection and document segments:
//
//	users/{userId}                      document
//	users/{userId}/pantry               collection
//	users/{userId}/pantry/{itemId}      document
//
// Every operation touches exactly one document and is atomic with respect to
// other operations on that document. There are no cross-document
// transactions.
//
// Field values are canonicalized on write: numbers become float64, maps
// become map[string]any, slices become []any. Timestamps are never taken
// from the caller's clock; callers write ServerTimestamp and the adapter
// replaces it with its own clock at write time, including inside array
// entries.
//
// Three backends implement Store: MongoStore (one Mongo collection per leaf
// collection name), PostgresStore (a JSONB documents table) and MemoryStore
// (process-local, for tests and development).
package docstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WriteMode selects how Set treats an existing document.
type WriteMode int

const (
	// Overwrite replaces the whole document.
	Overwrite WriteMode = iota
	// Merge replaces only the given top-level fields.
	Merge
)

func (m WriteMode) String() string {
	if m == Merge {
		return "merge"
	}
	return "overwrite"
}

type serverTimestamp struct{}

// ServerTimestamp is a field value placeholder resolved by the adapter to the
// commit time of the write.
var ServerTimestamp = serverTimestamp{}

// Store is implemented by every backend.
type Store interface {
	// Get returns the document at path or common.ErrorNotFound.
	Get(ctx context.Context, path string) (*Document, error)

	// Set writes fields at path, creating the document when absent.
	Set(ctx context.Context, path string, fields map[string]any, mode WriteMode) error

	// Create writes fields at path only if no document exists there;
	// otherwise it fails with common.ErrorAlreadyExists and changes nothing.
	Create(ctx context.Context, path string, fields map[string]any) error

	// Add creates a document with a store-assigned id inside the collection
	// path and returns that id.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Update merges top-level fields into an existing document or fails
	// with common.ErrorNotFound.
	Update(ctx context.Context, path string, fields map[string]any) error

	// ArrayAppend atomically appends entry to the array field. A missing
	// field counts as an empty array. Fails with common.ErrorNotFound.
	ArrayAppend(ctx context.Context, path, field string, entry any) error

	// ArrayReplace sets the array field to values. Fails with
	// common.ErrorNotFound.
	ArrayReplace(ctx context.Context, path, field string, values []any) error

	// ArrayRemoveWhere atomically removes every element of the array field
	// whose fields equal all key/values of match. Fails with
	// common.ErrorNotFound.
	ArrayRemoveWhere(ctx context.Context, path, field string, match map[string]any) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// Option customizes a backend.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithClock replaces the clock used to resolve ServerTimestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the generator of store-assigned ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func (o options) commitTime() time.Time {
	return o.now().UTC()
}
