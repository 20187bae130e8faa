package statstore

import (
	"context"
	"errors"
)

var _ Store = (*Multi)(nil)

// NewMulti fans writes out to every store. Reads are served by the first
// store, so put the readable one first.
func NewMulti(stores ...Store) *Multi {
	return &Multi{stores: stores}
}

// AddStatisticsEntry writes to every store, even after one fails, and joins
// the errors.
func (m *Multi) AddStatisticsEntry(ctx context.Context, entry Entry) error {
	var errs []error
	for _, s := range m.stores {
		if err := s.AddStatisticsEntry(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Entries(ctx context.Context, typ EntryType) ([]Entry, error) {
	if len(m.stores) == 0 {
		return nil, ErrReadUnsupported
	}
	return m.stores[0].Entries(ctx, typ)
}
