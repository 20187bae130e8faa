package statstore

import "context"

// Store is the remote statistics store that receives flushed batch entries
// and serves them back, newest first. An empty type reads every entry.
type Store interface {
	AddStatisticsEntry(ctx context.Context, entry Entry) error
	Entries(ctx context.Context, typ EntryType) ([]Entry, error)
}
