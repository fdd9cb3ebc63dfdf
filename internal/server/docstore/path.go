package docstore

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// Ref identifies a document by its path, leaf collection, id and parent
// document path ("" for root documents).
type Ref struct {
	Path       string
	Collection string
	ID         string
	Parent     string
}

// ValidID reports whether id can be used as a single path segment.
func ValidID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}

// JoinPath joins segments with "/".
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}

func splitPath(p string) ([]string, error) {
	if p == "" {
		return nil, fmt.Errorf("%w: empty path", common.ErrorInvalidPath)
	}
	segments := strings.Split(p, "/")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", common.ErrorInvalidPath, p)
		}
	}
	return segments, nil
}

// ParseDocumentPath validates a document path (even number of segments).
func ParseDocumentPath(p string) (Ref, error) {
	segments, err := splitPath(p)
	if err != nil {
		return Ref{}, err
	}
	if len(segments)%2 != 0 {
		return Ref{}, fmt.Errorf("%w: %q is a collection path", common.ErrorInvalidPath, p)
	}
	n := len(segments)
	return Ref{
		Path:       p,
		Collection: segments[n-2],
		ID:         segments[n-1],
		Parent:     JoinPath(segments[:n-2]...),
	}, nil
}

// ParseCollectionPath validates a collection path (odd number of segments)
// and returns the ref a new document with the given id would have.
func ParseCollectionPath(p, id string) (Ref, error) {
	segments, err := splitPath(p)
	if err != nil {
		return Ref{}, err
	}
	if len(segments)%2 != 1 {
		return Ref{}, fmt.Errorf("%w: %q is a document path", common.ErrorInvalidPath, p)
	}
	if !ValidID(id) {
		return Ref{}, fmt.Errorf("%w: invalid id %q", common.ErrorInvalidPath, id)
	}
	return Ref{
		Path:       p + "/" + id,
		Collection: segments[len(segments)-1],
		ID:         id,
		Parent:     JoinPath(segments[:len(segments)-1]...),
	}, nil
}
