package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubstats_cache_hits_total",
			Help: "The total number of aggregate requests served from the cache.",
		}, []string{"aggregate"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubstats_cache_misses_total",
			Help: "The total number of aggregate requests that returned a placeholder.",
		}, []string{"aggregate"}),
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubstats_computations_total",
			Help: "The total number of background aggregate computations started.",
		}, []string{"aggregate"}),
		ComputationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubstats_computation_failures_total",
			Help: "The total number of background aggregate computations that failed.",
		}, []string{"aggregate"}),
		ComputationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clubstats_computation_duration_seconds",
			Help:    "The duration of background aggregate computations.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"aggregate"}),
		AggregatorLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubstats_aggregator_loads_total",
			Help: "The total number of aggregator instances constructed by the loader.",
		}, []string{"aggregate"}),
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_batch_flushes_total",
			Help: "The total number of batch flushes to the statistics store.",
		}),
		FlushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_batch_flush_failures_total",
			Help: "The total number of batch flushes that failed to write an entry.",
		}),
		EntriesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubstats_statistics_entries_written_total",
			Help: "The total number of statistics entries written to the store.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clubstats_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clubstats_cache_entries",
			Help: "The number of aggregates held in the statistics cache, expired ones included until read.",
		}),
	}

	reg.MustRegister(
		s.CacheHits,
		s.CacheMisses,
		s.Computations,
		s.ComputationFailures,
		s.ComputationDuration,
		s.AggregatorLoads,
		s.Flushes,
		s.FlushFailures,
		s.EntriesWritten,
		s.StartupTimeSeconds,
		s.CacheEntries,
	)

	return s
}

func (s *Service) IncCacheHit(kind string) {
	s.CacheHits.WithLabelValues(kind).Inc()
}

func (s *Service) IncCacheMiss(kind string) {
	s.CacheMisses.WithLabelValues(kind).Inc()
}

func (s *Service) IncComputations(kind string) {
	s.Computations.WithLabelValues(kind).Inc()
}

func (s *Service) IncComputationFailures(kind string) {
	s.ComputationFailures.WithLabelValues(kind).Inc()
}

func (s *Service) ObserveComputationDuration(kind string, duration float64) {
	s.ComputationDuration.WithLabelValues(kind).Observe(duration)
}

func (s *Service) IncAggregatorLoads(kind string) {
	s.AggregatorLoads.WithLabelValues(kind).Inc()
}

func (s *Service) IncFlushes() {
	s.Flushes.Inc()
}

func (s *Service) IncFlushFailures() {
	s.FlushFailures.Inc()
}

func (s *Service) AddEntriesWritten(n int) {
	s.EntriesWritten.Add(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

func (s *Service) SetCacheEntries(n int) {
	s.CacheEntries.Set(float64(n))
}
