package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// MemoryStore keeps documents in process memory. A single mutex serializes
// all operations, which trivially gives per-document atomicity. Values are
// deep-copied on the way in and out.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]any
	opts options
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]any),
		opts: buildOptions(opts),
	}
}

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *MemoryStore) Get(ctx context.Context, path string) (*Document, error) {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.docs[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &Document{Path: path, ID: ref.ID, Fields: copyFields(fields)}, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, fields map[string]any, mode WriteMode) error {
	if _, err := ParseDocumentPath(path); err != nil {
		return err
	}
	c, err := canonicalFields(fields, s.opts.commitTime())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[path]
	if !ok || mode == Overwrite {
		s.docs[path] = c
		return nil
	}
	for k, v := range c {
		existing[k] = v
	}
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, path string, fields map[string]any) error {
	if _, err := ParseDocumentPath(path); err != nil {
		return err
	}
	return s.insert(path, fields)
}

func (s *MemoryStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, err := ParseCollectionPath(collection, s.opts.newID())
	if err != nil {
		return "", err
	}
	if err := s.insert(ref.Path, fields); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *MemoryStore) insert(path string, fields map[string]any) error {
	c, err := canonicalFields(fields, s.opts.commitTime())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[path]; ok {
		return common.ErrorAlreadyExists
	}
	s.docs[path] = c
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := requireFields(fields); err != nil {
		return err
	}
	c, err := canonicalFields(fields, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.mutate(path, func(doc map[string]any) error {
		for k, v := range c {
			doc[k] = v
		}
		return nil
	})
}

func (s *MemoryStore) ArrayAppend(ctx context.Context, path, field string, entry any) error {
	if err := requireField(field); err != nil {
		return err
	}
	c, err := canonical(entry, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.mutate(path, func(doc map[string]any) error {
		arr, err := arrayField(doc, field)
		if err != nil {
			return err
		}
		doc[field] = append(arr, c)
		return nil
	})
}

func (s *MemoryStore) ArrayReplace(ctx context.Context, path, field string, values []any) error {
	if err := requireField(field); err != nil {
		return err
	}
	c, err := canonicalArray(values, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.mutate(path, func(doc map[string]any) error {
		doc[field] = c
		return nil
	})
}

func (s *MemoryStore) ArrayRemoveWhere(ctx context.Context, path, field string, match map[string]any) error {
	if err := requireField(field); err != nil {
		return err
	}
	if err := requireMatch(match); err != nil {
		return err
	}
	m, err := canonicalFields(match, s.opts.commitTime())
	if err != nil {
		return err
	}
	return s.mutate(path, func(doc map[string]any) error {
		arr, err := arrayField(doc, field)
		if err != nil {
			return err
		}
		doc[field] = filterOut(arr, m)
		return nil
	})
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// mutate applies fn to the stored document under the lock. fn works on a
// copy so a failing mutation leaves the document untouched.
func (s *MemoryStore) mutate(path string, fn func(doc map[string]any) error) error {
	if _, err := ParseDocumentPath(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return common.ErrorNotFound
	}
	work := copyFields(doc)
	if err := fn(work); err != nil {
		return err
	}
	s.docs[path] = work
	return nil
}

func arrayField(doc map[string]any, field string) ([]any, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return []any{}, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not an array", common.ErrorInvalidArgument, field)
	}
	return arr, nil
}

// copyFields deep-copies canonical values.
func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return copyFields(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	default:
		return x
	}
}
