package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetches         *prometheus.CounterVec
	providerErrors  *prometheus.CounterVec
	synthetic       *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	scanDuration    prometheus.Histogram
	recommendations *prometheus.CounterVec
	trainings       prometheus.Counter
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_provider_fetches_total",
				Help: "Total successful quote fetches per provider",
			},
			[]string{"provider", "symbol"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_provider_errors_total",
				Help: "Total failed provider attempts",
			},
			[]string{"provider"},
		),
		synthetic: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_synthetic_quotes_total",
				Help: "Total synthetic fallback quotes served",
			},
			[]string{"symbol"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_quote_cache_hits_total",
				Help: "Total quote cache hits",
			},
			[]string{"symbol"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketpulse_last_price",
				Help: "Last recorded price for a symbol",
			},
			[]string{"symbol"},
		),
		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "marketpulse_scan_duration_seconds",
				Help:    "Duration of a full scan cycle in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_recommendations_total",
				Help: "Total recommendations generated per action",
			},
			[]string{"action"},
		),
		trainings: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "marketpulse_model_trainings_total",
				Help: "Total online training updates applied to the model",
			},
		),
	}
}

// RecordFetch records a successful provider fetch.
func (r *Recorder) RecordFetch(provider, symbol string) {
	r.fetches.WithLabelValues(provider, symbol).Inc()
}

// RecordProviderError records a failed provider attempt.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordSynthetic records a synthetic fallback quote.
func (r *Recorder) RecordSynthetic(symbol string) {
	r.synthetic.WithLabelValues(symbol).Inc()
}

// RecordCacheHit records a quote cache hit.
func (r *Recorder) RecordCacheHit(symbol string) {
	r.cacheHits.WithLabelValues(symbol).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordScanDuration records one scan cycle duration in seconds.
func (r *Recorder) RecordScanDuration(seconds float64) {
	r.scanDuration.Observe(seconds)
}

// RecordRecommendation records a generated recommendation.
func (r *Recorder) RecordRecommendation(action string) {
	r.recommendations.WithLabelValues(action).Inc()
}

// RecordTraining records one model training update.
func (r *Recorder) RecordTraining() {
	r.trainings.Inc()
}
