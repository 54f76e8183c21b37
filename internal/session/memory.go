package session

import (
	"encoding/json"
	"sync"
)

// MemoryStorage is a Storage kept in a map, JSON-encoding values the way
// browser local storage does. Useful for tests and for ephemeral sessions.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Set(k string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k] = b
	return nil
}

func (m *MemoryStorage) Get(k string, v any) error {
	m.mu.Lock()
	b, ok := m.data[k]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return json.Unmarshal(b, v)
}

func (m *MemoryStorage) Del(k string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k)
}

// Contains reports whether k is stored.
func (m *MemoryStorage) Contains(k string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[k]
	return ok
}
