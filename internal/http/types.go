package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/club-stats/internal/config"
	"github.com/mauv0809/club-stats/internal/http/handlers"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/pubsub"
	"github.com/mauv0809/club-stats/internal/slack"
	"github.com/mauv0809/club-stats/internal/statistics"
	"github.com/mauv0809/club-stats/internal/statstore"
)

type Server struct {
	Stats          statistics.Provider
	Entries        statstore.Store
	Counters       metrics.CounterStore
	Feed           handlers.Refresher
	Exporter       handlers.Flusher
	SlackClient    *slack.SlackClient
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	upgrader       websocket.Upgrader
}
