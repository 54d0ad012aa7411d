package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ViewerMetrics holds all Prometheus metrics for the log viewer service.
type ViewerMetrics struct {
	IndexReadsTotal      *prometheus.CounterVec
	RecordsFetchedTotal  prometheus.Counter
	PartialFailuresTotal prometheus.Counter
	StaleIndexRefsTotal  prometheus.Counter
	DeletesTotal         *prometheus.CounterVec
}

// NewViewerMetrics initializes and registers the Prometheus metrics.
func NewViewerMetrics() *ViewerMetrics {
	return &ViewerMetrics{
		IndexReadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logview",
			Subsystem: "retrieval",
			Name:      "index_reads_total",
			Help:      "Total number of index reads by selected strategy.",
		}, []string{"strategy"}),
		RecordsFetchedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "logview",
			Subsystem: "retrieval",
			Name:      "records_fetched_total",
			Help:      "Total number of log records successfully resolved from indexes.",
		}),
		PartialFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "logview",
			Subsystem: "retrieval",
			Name:      "partial_fetch_failures_total",
			Help:      "Total number of individual record fetches that failed and were dropped from a batch.",
		}),
		StaleIndexRefsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "logview",
			Subsystem: "retrieval",
			Name:      "stale_index_refs_total",
			Help:      "Total number of index entries pointing at records that no longer exist.",
		}),
		DeletesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logview",
			Subsystem: "admin",
			Name:      "deletes_total",
			Help:      "Total number of operator delete requests by status.",
		}, []string{"status"}), // status: ok, not_found, invalid, error
	}
}
