package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigmac_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigmac_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Query metrics
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigmac_query_cache_lookups_total",
			Help: "Query cache lookups",
		},
		[]string{"query", "result"}, // result: hit|miss
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigmac_store_query_duration_seconds",
			Help:    "Record store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"query", "status"}, // status: success|error
	)

	// Write metrics
	Writes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigmac_writes_total",
			Help: "Write operations by outcome",
		},
		[]string{"operation", "status"}, // status: success|rejected|error
	)

	ImportedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigmac_imported_rows_total",
			Help: "CSV rows seen by the importer",
		},
		[]string{"status"}, // status: inserted|skipped
	)

	// Valuation metrics
	ValuationRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigmac_valuation_records_total",
			Help: "Records run through the valuation classifier",
		},
		[]string{"outcome"}, // outcome: undervalued|neutral|overvalued|no_coordinates|invalid_value
	)
)

var registerOnce sync.Once

// Init registers all metrics with Prometheus. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests)
		prometheus.MustRegister(HTTPDuration)
		prometheus.MustRegister(CacheLookups)
		prometheus.MustRegister(StoreQueryDuration)
		prometheus.MustRegister(Writes)
		prometheus.MustRegister(ImportedRows)
		prometheus.MustRegister(ValuationRecords)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func RecordHTTPRequest(method, route, code string, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, code).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordStoreQuery(query string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(query, status(err)).Observe(duration.Seconds())
}

func RecordCacheLookup(query string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(query, result).Inc()
}

// RecordWrite counts a write. rejected marks a client-side refusal such as a
// stale date.
func RecordWrite(operation string, rejected bool, err error) {
	s := status(err)
	if rejected {
		s = "rejected"
	}
	Writes.WithLabelValues(operation, s).Inc()
}

func RecordImport(inserted, skipped int) {
	ImportedRows.WithLabelValues("inserted").Add(float64(inserted))
	ImportedRows.WithLabelValues("skipped").Add(float64(skipped))
}

func RecordValuation(outcome string, n int) {
	if n == 0 {
		return
	}
	ValuationRecords.WithLabelValues(outcome).Add(float64(n))
}
