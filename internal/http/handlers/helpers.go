package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-stats/internal/analytics"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// DateLayout is the format of date query parameters.
const DateLayout = "2006-01-02"

// Refresher reloads the club data feeding the statistics.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Flusher writes pending batch statistics.
type Flusher interface {
	Flush(ctx context.Context) error
	Pending() int
}

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// parsePeriod reads an inclusive date range. The end date covers its whole day.
func parsePeriod(r *http.Request, fromKey, toKey string) (analytics.Period, error) {
	q := r.URL.Query()
	from, err := time.Parse(DateLayout, q.Get(fromKey))
	if err != nil {
		return analytics.Period{}, fmt.Errorf("invalid %s: %w", fromKey, err)
	}
	to, err := time.Parse(DateLayout, q.Get(toKey))
	if err != nil {
		return analytics.Period{}, fmt.Errorf("invalid %s: %w", toKey, err)
	}
	if to.Before(from) {
		return analytics.Period{}, fmt.Errorf("%s is before %s", toKey, fromKey)
	}
	return analytics.Period{From: from, To: to.Add(24*time.Hour - time.Nanosecond)}, nil
}
