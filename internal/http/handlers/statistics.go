package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/statistics"
	"github.com/mauv0809/club-stats/internal/statstore"
)

func PlayersHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.Players(r.Context()))
	}
}

func TeamHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.Team(r.Context()))
	}
}

func FundHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.Fund(r.Context()))
	}
}

func MatchHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing required parameter: id", http.StatusBadRequest)
			return
		}
		analysis, err := stats.Match(r.Context(), id)
		if errors.Is(err, analytics.ErrMatchNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to analyse match", "error", err, "matchID", id)
			http.Error(w, "Failed to analyse match", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

func ComparePlayersHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids []string
		for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			http.Error(w, "Missing required parameter: ids", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, stats.ComparePlayers(r.Context(), ids))
	}
}

func ComparePeriodsHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		first, err := parsePeriod(r, "from1", "to1")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		second, err := parsePeriod(r, "from2", "to2")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, stats.ComparePeriods(r.Context(), first, second))
	}
}

func CorrelationsHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.Correlations(r.Context()))
	}
}

func ExportHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := stats.ExportReport(r.Context())
		if err != nil {
			log.Error("Failed to export statistics report", "error", err)
			http.Error(w, "Failed to export statistics report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="statistics-report.json"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(report); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func EntriesHandler(store statstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := statstore.EntryType(r.URL.Query().Get("type"))
		if typ != "" && !typ.Valid() {
			http.Error(w, "Invalid type: must be player, team or financial", http.StatusBadRequest)
			return
		}
		entries, err := store.Entries(r.Context(), typ)
		if errors.Is(err, statstore.ErrReadUnsupported) {
			http.Error(w, "Statistics store does not support reads", http.StatusNotImplemented)
			return
		}
		if err != nil {
			log.Error("Failed to get statistics entries", "error", err, "type", typ)
			http.Error(w, "Failed to get statistics entries", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func CountersHandler(counters metrics.CounterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := counters.GetAll(r.Context())
		if err != nil {
			log.Error("Failed to get counters", "error", err)
			http.Error(w, "Failed to get counters", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func ClearCacheHandler(stats statistics.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		prefix := r.URL.Query().Get("prefix")
		if IsDryRunFromContext(r) {
			log.Info("Dry run mode: cache not cleared.", "prefix", prefix)
			writeJSON(w, http.StatusOK, map[string]any{"prefix": prefix, "cleared": 0, "dry_run": true})
			return
		}
		cleared := stats.ClearCache(prefix)
		writeJSON(w, http.StatusOK, map[string]any{"prefix": prefix, "cleared": cleared})
	}
}
