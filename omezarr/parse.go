package omezarr

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Location is a resolved zarr hierarchy root.
type Location struct {
	store Store
}

// NewLocation creates a location over an existing store. The store's
// root must be a zarr group.
func NewLocation(store Store) *Location {
	return &Location{store: store}
}

// Store returns the location's store.
func (l *Location) Store() Store {
	return l.store
}

// OpenGroup opens the group at the given hierarchy path ("" for the root).
func (l *Location) OpenGroup(path string) (*Group, error) {
	return openGroup(l.store, normalizePath(path))
}

// OpenArray opens the array at the given hierarchy path.
func (l *Location) OpenArray(path string) (*Array, error) {
	return openArray(l.store, normalizePath(path))
}

// ParseURL resolves a local directory path or an http(s) URL to a zarr
// group root. A path that does not point at a zarr group resolves to
// (nil, nil), meaning "not this format" rather than an error.
func ParseURL(path string) (*Location, error) {
	return ParseURLWithTimeout(path, 0)
}

// ParseURLWithTimeout is ParseURL with an explicit HTTP request timeout
// for remote stores. A zero timeout uses DefaultHTTPTimeout.
func ParseURLWithTimeout(path string, timeout time.Duration) (*Location, error) {
	var store Store

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		store = NewHTTPStore(path, timeout)
	} else {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return nil, nil
		}
		store = NewDirStore(path)
	}

	if !isGroupRoot(store) {
		return nil, nil
	}
	return NewLocation(store), nil
}

// isGroupRoot reports whether the store's root looks like a zarr group.
func isGroupRoot(store Store) bool {
	return store.Exists(zgroupKey) || store.Exists(zattrsKey)
}

const (
	zgroupKey = ".zgroup"
	zattrsKey = ".zattrs"
	zarrayKey = ".zarray"
)

// normalizePath strips leading and trailing slashes from a hierarchy path.
func normalizePath(path string) string {
	return strings.Trim(path, "/")
}

// baseName returns the last component of a hierarchy path.
func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// notFound reports whether err wraps ErrKeyNotFound.
func notFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
