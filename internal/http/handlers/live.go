package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/club-stats/internal/statistics"
)

const liveWriteTimeout = 10 * time.Second

// LiveMessage is one frame on the live statistics socket.
type LiveMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// LiveHandler upgrades to a websocket and pushes every player, team and fund
// aggregate update, starting with the latest known value of each.
func LiveHandler(stats statistics.Provider, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade websocket connection", "error", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// The read loop only notices when the client goes away.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		players := stats.PlayerUpdates().Subscribe(ctx)
		team := stats.TeamUpdates().Subscribe(ctx)
		fund := stats.FundUpdates().Subscribe(ctx)
		log.Info("Live statistics client connected", "remote", r.RemoteAddr)

		for {
			var msg LiveMessage
			select {
			case <-ctx.Done():
				log.Info("Live statistics client disconnected", "remote", r.RemoteAddr)
				return
			case v, ok := <-players:
				if !ok {
					return
				}
				msg = LiveMessage{Type: "players", Data: v}
			case v, ok := <-team:
				if !ok {
					return
				}
				msg = LiveMessage{Type: "team", Data: v}
			case v, ok := <-fund:
				if !ok {
					return
				}
				msg = LiveMessage{Type: "fund", Data: v}
			}

			conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				log.Error("Failed to write live statistics", "error", err, "type", msg.Type)
				return
			}
		}
	}
}
