package providers

import (
	"fsd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TrackerStatsInterface is the read-only view of the tracker that gauge
// metrics observe. Registered late, after the service is constructed.
type TrackerStatsInterface interface {
	SegmentCount() int
	LockedIn() bool
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncClassifications(source string)
	IncSessionsFinalized()
	IncUploadFailures()
	ObservePersistenceDuration(duration time.Duration)
	RegisterTrackerGauges(stats TrackerStatsInterface)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	classifications     *prometheus.CounterVec
	sessionsFinalized   prometheus.Counter
	uploadFailures      prometheus.Counter
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncClassifications(source string) {
	m.classifications.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) IncSessionsFinalized() {
	m.sessionsFinalized.Inc()
}

func (m *MetricsProvider) IncUploadFailures() {
	m.uploadFailures.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) RegisterTrackerGauges(stats TrackerStatsInterface) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fsd_live_segments",
		Help: "Number of segments in the in-progress session",
	}, func() float64 {
		return float64(stats.SegmentCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fsd_locked_in",
		Help: "1 while a session is active, 0 otherwise",
	}, func() float64 {
		if stats.LockedIn() {
			return 1
		}
		return 0
	})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fsd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fsd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fsd_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fsd_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		classifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fsd_classifications_total",
			Help: "Content classification results by source",
		}, []string{"source"}),

		sessionsFinalized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fsd_sessions_finalized_total",
			Help: "Total number of finalized sessions",
		}),

		uploadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fsd_upload_failures_total",
			Help: "Total number of failed session uploads",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fsd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncClassifications(_ string)                      {}
func (n *noopMetrics) IncSessionsFinalized()                            {}
func (n *noopMetrics) IncUploadFailures()                               {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) RegisterTrackerGauges(_ TrackerStatsInterface)    {}
