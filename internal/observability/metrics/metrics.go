package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ImportMetrics counts the outcome of spreadsheet import requests.
type ImportMetrics struct {
	FilesTotal          *prometheus.CounterVec
	RowsProcessed       prometheus.Counter
	HistorySyncFailures prometheus.Counter
}

func NewImportMetrics() *ImportMetrics {
	return NewImportMetricsWith(prometheus.DefaultRegisterer)
}

func NewImportMetricsWith(reg prometheus.Registerer) *ImportMetrics {
	factory := promauto.With(reg)
	return &ImportMetrics{
		FilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "import",
			Name:      "files_total",
			Help:      "Import files processed by terminal state.",
		}, []string{"status"}),
		RowsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "import",
			Name:      "rows_processed_total",
			Help:      "Validated rows reconciled into the relational store.",
		}),
		HistorySyncFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "import",
			Name:      "history_sync_failures_total",
			Help:      "History document writes that failed after commit.",
		}),
	}
}

// Terminal states of an import request.
const (
	StatusDone       = "done"
	StatusAborted    = "aborted"
	StatusRolledBack = "rolled_back"
)
