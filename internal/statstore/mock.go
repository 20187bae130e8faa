package statstore

import (
	"context"
	"slices"
	"sync"
)

var _ Store = (*MockStore)(nil)

// MockStore is an in-memory Store for tests. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	AddStatisticsEntryFunc func(entry Entry) error
	EntriesFunc            func(typ EntryType) ([]Entry, error)

	Added []Entry
}

// NewMock creates an empty mock store.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) AddStatisticsEntry(ctx context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddStatisticsEntryFunc != nil {
		if err := m.AddStatisticsEntryFunc(entry); err != nil {
			return err
		}
	}
	m.Added = append(m.Added, entry)
	return nil
}

// Entries returns the added entries of typ, newest first.
func (m *MockStore) Entries(ctx context.Context, typ EntryType) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EntriesFunc != nil {
		return m.EntriesFunc(typ)
	}
	out := make([]Entry, 0, len(m.Added))
	for _, e := range slices.Backward(m.Added) {
		if typ == "" || e.Type == typ {
			out = append(out, e)
		}
	}
	return out, nil
}

// Snapshot returns a copy of every added entry in insertion order.
func (m *MockStore) Snapshot() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Added)
}
