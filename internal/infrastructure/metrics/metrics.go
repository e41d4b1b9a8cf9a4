package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the deposit ledger.
// A nil *Metrics is valid and records nothing, which keeps tests free of
// duplicate collector registration.
type Metrics struct {
	// Ledger metrics
	EntriesRecorded    *prometheus.CounterVec
	CorrectionsApplied prometheus.Counter
	EntryAmount        prometheus.Histogram

	// Statement metrics
	StatementsBuilt *prometheus.CounterVec

	// Dashboard cache metrics
	DashboardCacheHits   prometheus.Counter
	DashboardCacheMisses prometheus.Counter

	// Import metrics
	ImportRows *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EntriesRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposit_entries_recorded_total",
				Help: "Total number of ledger entries recorded by kind",
			},
			[]string{"kind"},
		),
		CorrectionsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deposit_corrections_applied_total",
			Help: "Total number of same-month corrections applied",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "deposit_entry_amount",
			Help:    "Recorded entry amounts",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000},
		}),
		StatementsBuilt: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposit_statements_built_total",
				Help: "Total number of statements built by scope",
			},
			[]string{"scope"},
		),
		DashboardCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deposit_dashboard_cache_hits_total",
			Help: "Dashboard summaries served from cache",
		}),
		DashboardCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deposit_dashboard_cache_misses_total",
			Help: "Dashboard summaries recomputed from the ledger",
		}),
		ImportRows: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deposit_import_rows_total",
				Help: "Bulk import rows processed by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// EntryRecorded counts a recorded entry and observes its amount.
func (m *Metrics) EntryRecorded(kind string, amount float64) {
	if m == nil {
		return
	}
	m.EntriesRecorded.WithLabelValues(kind).Inc()
	m.EntryAmount.Observe(amount)
}

// CorrectionApplied counts an applied correction.
func (m *Metrics) CorrectionApplied() {
	if m == nil {
		return
	}
	m.CorrectionsApplied.Inc()
}

// StatementBuilt counts a built statement.
func (m *Metrics) StatementBuilt(scope string) {
	if m == nil {
		return
	}
	m.StatementsBuilt.WithLabelValues(scope).Inc()
}

// DashboardCacheHit counts a dashboard cache hit or miss.
func (m *Metrics) DashboardCacheHit(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.DashboardCacheHits.Inc()
	} else {
		m.DashboardCacheMisses.Inc()
	}
}

// ImportRow counts a processed import row.
func (m *Metrics) ImportRow(outcome string) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues(outcome).Inc()
}
