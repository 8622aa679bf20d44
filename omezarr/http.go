package omezarr

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds individual requests made by an HTTPStore.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPStore serves a zarr hierarchy from an HTTP(S) object store.
// Keys map directly to URL path segments under the base URL.
type HTTPStore struct {
	base   string
	client *http.Client
}

// NewHTTPStore creates a store for the given base URL. A zero timeout
// uses DefaultHTTPTimeout.
func NewHTTPStore(base string, timeout time.Duration) *HTTPStore {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPStore{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPStore) url(key string) string {
	return s.base + "/" + key
}

func (s *HTTPStore) Get(key string) ([]byte, error) {
	resp, err := s.client.Get(s.url(key))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", key, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (s *HTTPStore) Exists(key string) bool {
	resp, err := s.client.Head(s.url(key))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return true
	}
	if resp.StatusCode == http.StatusMethodNotAllowed {
		// Some object stores reject HEAD; fall back to GET.
		_, err := s.Get(key)
		return err == nil
	}
	return false
}
