package omezarr

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is read-only access to a zarr hierarchy's key space. Keys are
// slash-separated and relative to the hierarchy root, e.g.
// "labels/cells/.zattrs" or "0/0.0.0".
type Store interface {
	// Get returns the value for key, or an error wrapping ErrKeyNotFound
	// when the key does not exist.
	Get(key string) ([]byte, error)

	// Exists reports whether key is present.
	Exists(key string) bool
}

// DirStore serves a zarr hierarchy from a local directory.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

func (s *DirStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (s *DirStore) Exists(key string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(key)))
	return err == nil
}

// MemStore is an in-memory store, used by tests.
type MemStore struct {
	values map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Set stores a value under key.
func (s *MemStore) Set(key string, value []byte) {
	s.values[key] = value
}

// SetString stores a string value under key.
func (s *MemStore) SetString(key, value string) {
	s.Set(key, []byte(value))
}

func (s *MemStore) Get(key string) ([]byte, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (s *MemStore) Exists(key string) bool {
	_, ok := s.values[key]
	return ok
}

// joinKey joins a hierarchy path and a child name into a store key.
func joinKey(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}
