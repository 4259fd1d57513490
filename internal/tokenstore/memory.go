package tokenstore

import "sync"

// Memory — in-memory хранилище для тестов и эфемерных запусков
// (токены не переживают процесс).
type Memory struct {
	mu  sync.Mutex
	rec Record
	set bool
}

func NewMemory() *Memory { return &Memory{} }

var _ Store = (*Memory)(nil)

func (m *Memory) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = rec
	m.set = true

	return nil
}

func (m *Memory) Read() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return Record{}, ErrNotFound
	}

	return m.rec, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = Record{}
	m.set = false

	return nil
}
