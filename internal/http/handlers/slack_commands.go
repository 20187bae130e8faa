package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	internalslack "github.com/mauv0809/club-stats/internal/slack"
	"github.com/mauv0809/club-stats/internal/statistics"
	"github.com/slack-go/slack"
)

const defaultLeaderboardSize = 10

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// parseLeaderboardSize reads an optional leaderboard length, e.g. "/leaderboard 5".
func parseLeaderboardSize(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return defaultLeaderboardSize
	}
	return n
}

// LeaderboardCommandHandler answers the /leaderboard slash command. It waits
// for real statistics rather than showing an empty placeholder.
func LeaderboardCommandHandler(stats statistics.Provider, client *internalslack.SlackClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			log.Error("Failed to parse form", "error", err)
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		size := parseLeaderboardSize(r.FormValue("text"))
		log.Info("Received leaderboard command", "user", r.FormValue("user_name"), "size", size)

		players := stats.Players(statistics.WithWait(r.Context()))
		respondWithSlackMsg(w, client.FormatLeaderboard(players, size))
	}
}

// PostLeaderboardHandler posts the leaderboard to the configured channel.
func PostLeaderboardHandler(stats statistics.Provider, client *internalslack.SlackClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		size := parseLeaderboardSize(r.URL.Query().Get("size"))
		players := stats.Players(statistics.WithWait(r.Context()))

		channel, ts, err := client.SendMessage(r.Context(), client.FormatLeaderboard(players, size), IsDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Failed to post leaderboard", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"channel": channel, "ts": ts})
	}
}
