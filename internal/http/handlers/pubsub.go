package handlers

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-stats/internal/pubsub"
)

// ClubDataChangedHandler receives the push subscription for club data
// changes and reloads the feed.
func ClubDataChangedHandler(feed Refresher, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received club data changed message", "body", string(bodyBytes))

		msg, rawData, err := pubsub.DecodePush(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var event pubsub.ClubDataChanged
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Club data changed", "collection", event.Collection, "subscription", msg.Subscription)

		if IsDryRunFromContext(r) {
			log.Info("Dry run mode: club feed not refreshed.")
			w.Write([]byte("OK"))
			return
		}
		if err := feed.Refresh(r.Context()); err != nil {
			log.Error("Failed to refresh club feed", "error", err)
			// A non-2xx status makes Pub/Sub redeliver the message.
			http.Error(w, "Failed to refresh club data", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
