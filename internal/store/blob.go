// Package store persists lawlens user data as whole JSON blobs under a few
// fixed keys. Every mutation rewrites the full value; there is no versioning.
package store

import (
	"context"
	"fmt"
	"sync"
)

// Keys under which user data is stored.
const (
	KeyHistory   = "searchHistory"
	KeySettings  = "userSettings"
	KeyBookmarks = "bookmarks"
	KeyTheme     = "theme"
)

// Blob is a flat key/value store of opaque byte values.
type Blob interface {
	// Get returns the stored value and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryBlob keeps values in process memory. It is safe for concurrent use.
type MemoryBlob struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBlob returns an empty in-memory store.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{data: map[string][]byte{}}
}

func (m *MemoryBlob) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBlob) Set(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBlob) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty store key")
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return fmt.Errorf("invalid store key %q", key)
		}
	}
	return nil
}
