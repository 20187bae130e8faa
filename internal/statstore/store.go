package statstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a Store backed by the statistics_entries table.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) AddStatisticsEntry(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	data, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal entry data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO statistics_entries (id, type, period, entry_date, data_json, calculated_at, calculated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, string(entry.Type), string(entry.Period), entry.Date, string(data), entry.CalculatedAt.UnixMilli(), entry.CalculatedBy)
	if err != nil {
		log.Error("Failed to insert statistics entry", "error", err, "type", entry.Type)
		return fmt.Errorf("failed to insert statistics entry: %w", err)
	}
	log.Debug("Stored statistics entry", "id", entry.ID, "type", entry.Type, "period", entry.Period)
	return nil
}

func (s *store) Entries(ctx context.Context, typ EntryType) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, type, period, entry_date, data_json, calculated_at, calculated_by FROM statistics_entries"
	var args []any
	if typ != "" {
		query += " WHERE type = ?"
		args = append(args, string(typ))
	}
	query += " ORDER BY calculated_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query statistics entries", "error", err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var typ, period, dataJSON string
		var calculatedAt int64
		if err := rows.Scan(&e.ID, &typ, &period, &e.Date, &dataJSON, &calculatedAt, &e.CalculatedBy); err != nil {
			log.Error("Failed to scan statistics entry", "error", err)
			continue
		}
		e.Type = EntryType(typ)
		e.Period = Period(period)
		e.CalculatedAt = time.UnixMilli(calculatedAt).UTC()
		if err := json.Unmarshal([]byte(dataJSON), &e.Data); err != nil {
			log.Error("Failed to unmarshal data_json", "error", err, "id", e.ID)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
