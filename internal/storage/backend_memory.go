package storage

import "sync"

// MemoryBackend keeps values in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (backend *MemoryBackend) Get(key string) ([]byte, bool, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	value, ok := backend.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (backend *MemoryBackend) Put(key string, value []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.values[key] = append([]byte(nil), value...)
	return nil
}

func (backend *MemoryBackend) Delete(key string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	delete(backend.values, key)
	return nil
}
