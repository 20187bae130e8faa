package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// RefreshHandler reloads the club feed. Meant for Cloud Scheduler.
func RefreshHandler(feed Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		log.Info("Starting scheduled club data refresh...")
		if err := feed.Refresh(r.Context()); err != nil {
			log.Error("Scheduled refresh failed", "error", err)
			http.Error(w, "Failed to refresh club data", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Club data refreshed!")
	}
}

// FlushHandler writes pending batch statistics without waiting for the
// debounce window. A nil flusher means exporting is disabled.
func FlushHandler(flusher Flusher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if flusher == nil {
			http.Error(w, "Statistics export is disabled", http.StatusServiceUnavailable)
			return
		}
		pending := flusher.Pending()
		if IsDryRunFromContext(r) {
			log.Info("Dry run mode: batch statistics not flushed.", "pending", pending)
			writeJSON(w, http.StatusOK, map[string]any{"pending": pending, "dry_run": true})
			return
		}
		if err := flusher.Flush(r.Context()); err != nil {
			log.Error("Manual flush failed", "error", err)
			http.Error(w, "Failed to flush statistics", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pending": pending, "flushed": true})
	}
}
