package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/mauv0809/club-stats/internal/config"
	"github.com/mauv0809/club-stats/internal/database"
	"github.com/mauv0809/club-stats/internal/exporter"
	server "github.com/mauv0809/club-stats/internal/http"
	"github.com/mauv0809/club-stats/internal/http/handlers"
	"github.com/mauv0809/club-stats/internal/inngest"
	"github.com/mauv0809/club-stats/internal/loader"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/pubsub"
	"github.com/mauv0809/club-stats/internal/slack"
	"github.com/mauv0809/club-stats/internal/statistics"
	"github.com/mauv0809/club-stats/internal/statstore"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clubStore := club.New(db)
	feed := club.NewFeed(clubStore)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.New(db)

	aggregators := loader.New(metricsSvc)
	if cfg.Preload {
		preloaded := aggregators.PreloadAll(ctx)
		go func() {
			<-preloaded
			log.Info("Aggregators preloaded")
		}()
	}
	stats := statistics.New(feed, aggregators, metricsSvc, statistics.WithTTL(cfg.Cache.TTL))

	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Warn("No GCP project configured. Flushed statistics will not be published.")
		pubsubClient = pubsub.NewOffline()
	}
	defer pubsubClient.Close()

	slackClient := slack.NewClient(cfg.Slack.Token, cfg.Slack.ChannelID, counters)

	// The local store comes first so it serves reads.
	entries := statstore.New(db)
	sinks := []statstore.Store{entries}
	if cfg.ProjectID != "" {
		sinks = append(sinks, statstore.NewPublisher(pubsubClient, pubsub.EventType(cfg.StatisticsTopic)))
	}
	if cfg.SlackEnabled() {
		sinks = append(sinks, slackClient)
	}

	var batchExporter *exporter.Exporter
	var flusher handlers.Flusher
	if cfg.Export.Enabled {
		batchExporter = exporter.New(stats, statstore.NewMulti(sinks...), metricsSvc,
			exporter.WithDebounce(cfg.Export.Debounce),
			exporter.WithMaxWait(cfg.Export.MaxWait),
			exporter.WithCounters(counters),
		)
		flusher = batchExporter
		go batchExporter.Run(ctx)
	}

	go stats.Run(ctx)
	go feed.Run(ctx, cfg.RefreshInterval)

	s := server.NewServer(
		stats,
		entries,
		counters,
		feed,
		flusher,
		slackClient,
		metricsHandler,
		*cfg,
		pubsubClient,
	)

	if cfg.InngestEnabled() {
		options := inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
			Dev:        &cfg.Inngest.Dev,
		}
		inngestProvider, err := inngestgo.NewClient(options)
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		inngestClient, err := inngest.New(inngestProvider, feed, flusher, cfg.Inngest.FlushCron)
		if err != nil {
			log.Fatalf("Failed to register inngest functions: %s", err)
		}
		s.MountInngest(inngestClient)
	}

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}

		cancel()
		if batchExporter != nil && batchExporter.Pending() > 0 {
			if err := batchExporter.Flush(shutdownCtx); err != nil {
				log.Error("Final statistics flush failed", "error", err)
			}
		}
	}

	stats.Close()
	feed.Close()
	log.Info("Server process shutting down")
}
