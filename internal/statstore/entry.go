package statstore

import (
	"time"

	"github.com/google/uuid"
)

// NewEntry creates an entry with a fresh id dated at calculatedAt.
func NewEntry(typ EntryType, period Period, data map[string]any, calculatedAt time.Time, calculatedBy string) Entry {
	return Entry{
		ID:           uuid.NewString(),
		Type:         typ,
		Period:       period,
		Date:         calculatedAt.UTC().Format(DateLayout),
		Data:         data,
		CalculatedAt: calculatedAt.UTC(),
		CalculatedBy: calculatedBy,
	}
}
