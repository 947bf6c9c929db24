package persistence

import (
	"sort"
	"sync"
)

// MemoryBackend keeps values in a map. It backs tests and the --memory mode.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (backend *MemoryBackend) Get(key string) (string, bool, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	value, ok := backend.values[key]
	return value, ok, nil
}

func (backend *MemoryBackend) Set(key string, value string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	backend.values[key] = value
	return nil
}

func (backend *MemoryBackend) Delete(key string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	delete(backend.values, key)
	return nil
}

func (backend *MemoryBackend) SetMany(values map[string]string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	for key, value := range values {
		backend.values[key] = value
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (backend *MemoryBackend) Keys() []string {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	keys := make([]string, 0, len(backend.values))
	for key := range backend.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
