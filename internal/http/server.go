package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/club-stats/internal/config"
	"github.com/mauv0809/club-stats/internal/http/handlers"
	"github.com/mauv0809/club-stats/internal/inngest"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/pubsub"
	"github.com/mauv0809/club-stats/internal/slack"
	"github.com/mauv0809/club-stats/internal/statistics"
	"github.com/mauv0809/club-stats/internal/statstore"
)

// NewServer wires the routes. exporter may be nil when batch export is
// disabled; pass an untyped nil, not a nil pointer.
func NewServer(stats statistics.Provider, entries statstore.Store, counters metrics.CounterStore, feed handlers.Refresher, exporter handlers.Flusher, slackClient *slack.SlackClient, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Stats:          stats,
		Entries:        entries,
		Counters:       counters,
		Feed:           feed,
		Exporter:       exporter,
		SlackClient:    slackClient,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		upgrader: websocket.Upgrader{
			// The live stream is read-only dashboard data.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("/statistics/players", Chain(handlers.PlayersHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/team", Chain(handlers.TeamHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/fund", Chain(handlers.FundHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/matches", Chain(handlers.MatchHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/compare/players", Chain(handlers.ComparePlayersHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/compare/periods", Chain(handlers.ComparePeriodsHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/correlations", Chain(handlers.CorrelationsHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/export", Chain(handlers.ExportHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("/statistics/entries", Chain(handlers.EntriesHandler(s.Entries), paramsMiddleware))
	s.Router.Handle("/statistics/counters", Chain(handlers.CountersHandler(s.Counters), paramsMiddleware))
	s.Router.Handle("/statistics/live", handlers.LiveHandler(s.Stats, s.upgrader))
	s.Router.Handle("/cache/clear", Chain(handlers.ClearCacheHandler(s.Stats), paramsMiddleware))

	s.Router.Handle("/pubsub/club-data-changed", Chain(handlers.ClubDataChangedHandler(s.Feed, s.pubsub), paramsMiddleware))
	s.Router.Handle("/scheduled/refresh", Chain(handlers.RefreshHandler(s.Feed), paramsMiddleware))
	s.Router.Handle("/scheduled/flush", Chain(handlers.FlushHandler(s.Exporter), paramsMiddleware))

	s.Router.Handle("/slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Stats, s.SlackClient), paramsMiddleware, s.slackVerificationMiddleware))
	s.Router.Handle("/slack/post-leaderboard", Chain(handlers.PostLeaderboardHandler(s.Stats, s.SlackClient), paramsMiddleware))
}

// MountInngest serves the Inngest functions under /api/inngest.
func (s *Server) MountInngest(client inngest.InngestClient) {
	s.Router.Handle("/api/inngest", client.Serve())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
