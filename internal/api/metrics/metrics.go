// Package metrics defines the custom Prometheus metrics of the CRM API. They
// are registered with the default registry on package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportRowsTotal counts spreadsheet rows by outcome.
// Label:
//   - outcome: "success", "skipped" or "failed"
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of imported spreadsheet rows, by outcome.",
	},
	[]string{"outcome"},
)

// ImportRunsTotal counts import attempts.
// Label:
//   - result: "ok" or "file_error"
var ImportRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_runs_total",
		Help:      "Total number of spreadsheet imports, by result.",
	},
	[]string{"result"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of generated documents, by format.",
	},
	[]string{"format"},
)

var ReportGenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_generation_duration_seconds",
		Help:      "Time spent rendering a document.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"format"},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

// CustomersCreatedTotal counts new customers.
// Label:
//   - source: "api" or "import"
var CustomersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created, by source.",
	},
	[]string{"source"},
)
