package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "obp", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "obp", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	QuoteOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "obp", Name: "quote_outcomes_total", Help: "Quote outcomes."},
		[]string{"outcome"}, // outcome: sellable|unsellable|not_found
	)
	TableEntries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "obp", Name: "table_entries",
			Help:    "Entries per generated combination table.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000},
		},
	)
	ValidationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "obp", Name: "table_validation_failures_total", Help: "Rejected table edits."},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "obp", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, QuoteOutcomes, TableEntries, ValidationFailures, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveQuote(outcome string) { // outcome: sellable|unsellable|not_found
	QuoteOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveTableSize(entries int) {
	TableEntries.Observe(float64(entries))
}

func ObserveValidationFailure() {
	ValidationFailures.Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
