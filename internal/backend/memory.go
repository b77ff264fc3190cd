package backend

import (
	"sync"

	"storage-control-api/internal/storage"
)

// Memory is a map-backed storage.Backend with optional concurrency safety.
// Values live only as long as the process.
type Memory struct {
	// If muPtr is nil, the backend is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex

	items map[string]string
}

// Options controls construction of a Memory backend.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	ConcurrencySafe bool
}

// NewMemory constructs an empty Memory backend.
func NewMemory(opts Options) *Memory {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &Memory{
		muPtr: mu,
		items: make(map[string]string),
	}
}

func (m *Memory) lockR() func() {
	if m.muPtr == nil {
		return func() {}
	}
	m.muPtr.RLock()
	return m.muPtr.RUnlock
}

func (m *Memory) lockW() func() {
	if m.muPtr == nil {
		return func() {}
	}
	m.muPtr.Lock()
	return m.muPtr.Unlock
}

// GetItem implements storage.Backend.
func (m *Memory) GetItem(key string) (string, bool, error) {
	unlock := m.lockR()
	defer unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements storage.Backend.
func (m *Memory) SetItem(key, value string) error {
	unlock := m.lockW()
	defer unlock()
	m.items[key] = value
	return nil
}

// RemoveItem implements storage.Backend.
func (m *Memory) RemoveItem(key string) error {
	unlock := m.lockW()
	defer unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored keys, expired records included.
func (m *Memory) Len() int {
	unlock := m.lockR()
	defer unlock()
	return len(m.items)
}

// Clear removes all entries.
func (m *Memory) Clear() {
	unlock := m.lockW()
	defer unlock()
	m.items = make(map[string]string)
}

// Ensure Memory implements storage.Backend at compile time.
var _ storage.Backend = (*Memory)(nil)
