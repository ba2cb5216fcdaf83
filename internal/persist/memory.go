package persist

import (
	"sync"

	"github.com/dtroode/storefront/internal/store"
)

var _ store.Persister = (*Memory)(nil)

// Memory keeps the encoded snapshot in process memory. It goes through the
// same encoding as the durable persisters so round-trip behaviour matches.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty Memory persister.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (store.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return store.Snapshot{}, false, nil
	}
	snapshot, err := store.DecodeSnapshot(m.data)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (m *Memory) Save(snapshot store.Snapshot) error {
	data, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}
