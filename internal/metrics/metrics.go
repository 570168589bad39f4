// Package metrics exports table lifecycle events as prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leengari/crackdb/internal/engine"
)

// Observer holds all Prometheus metrics for cracked tables. It implements
// engine.Observer.
type Observer struct {
	Selects      *prometheus.CounterVec
	IndexHits    *prometheus.CounterVec
	Moves        *prometheus.CounterVec
	Matches      *prometheus.HistogramVec
	RowsInserted *prometheus.CounterVec
	Cracks       *prometheus.CounterVec
	Reorders     *prometheus.CounterVec
}

// NewObserver creates and registers all metrics with the provided registry.
func NewObserver(reg prometheus.Registerer, namespace string) *Observer {
	selects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selects_total",
		Help:      "Equality selections run against cracked tables",
	}, []string{"table", "strategy"})

	indexHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pivot_index_hits_total",
		Help:      "Selections answered from the pivot index without scanning",
	}, []string{"table", "strategy"})

	moves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "element_moves_total",
		Help:      "Working-array slots moved by run swaps",
	}, []string{"table", "strategy"})

	matches := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "select_matches",
		Help:      "Rows returned per selection",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"table"})

	rowsInserted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_inserted_total",
		Help:      "Rows appended to tables",
	}, []string{"table"})

	cracks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "crack_initializations_total",
		Help:      "Times a cracked column was (re)initialised",
	}, []string{"table"})

	reorders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reorders_total",
		Help:      "Row permutations applied to tables",
	}, []string{"table"})

	reg.MustRegister(selects, indexHits, moves, matches, rowsInserted, cracks, reorders)

	return &Observer{
		Selects:      selects,
		IndexHits:    indexHits,
		Moves:        moves,
		Matches:      matches,
		RowsInserted: rowsInserted,
		Cracks:       cracks,
		Reorders:     reorders,
	}
}

// OnEvent implements engine.Observer.
func (o *Observer) OnEvent(event engine.Event) {
	switch data := event.Data.(type) {
	case engine.SelectInfo:
		o.Selects.WithLabelValues(event.Table, data.Strategy).Inc()
		if data.IndexHit {
			o.IndexHits.WithLabelValues(event.Table, data.Strategy).Inc()
		}
		o.Moves.WithLabelValues(event.Table, data.Strategy).Add(float64(data.Moves))
		o.Matches.WithLabelValues(event.Table).Observe(float64(data.Matches))
	case engine.InsertInfo:
		o.RowsInserted.WithLabelValues(event.Table).Add(float64(data.Rows))
	case engine.CrackInfo:
		o.Cracks.WithLabelValues(event.Table).Inc()
	case engine.ReorderInfo:
		o.Reorders.WithLabelValues(event.Table).Inc()
	}
}
