package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics, labelled by operation name.
var (
	storeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowchart_store_mutations_total",
		Help: "Collection replacements installed by the graph store",
	}, []string{"op"})

	storeMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowchart_store_ignored_total",
		Help: "Store operations that targeted an absent id and changed nothing",
	}, []string{"op"})

	storeRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowchart_store_rejected_total",
		Help: "Store operations rejected by validation",
	}, []string{"op"})

	nodesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flowchart_nodes",
		Help: "Nodes in the most recently installed collection",
	})

	edgesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flowchart_edges",
		Help: "Edges in the most recently installed collection",
	})
)

// Gesture metrics, labelled by gesture kind.
var (
	gesturesCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowchart_gestures_committed_total",
		Help: "Gestures that ended in a store mutation",
	}, []string{"gesture"})

	gesturesAborted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowchart_gestures_aborted_total",
		Help: "Gestures dropped without mutation",
	}, []string{"gesture", "reason"})
)

// Store helpers
func StoreMutation(op string) { storeMutations.WithLabelValues(op).Inc() }
func StoreMiss(op string)     { storeMisses.WithLabelValues(op).Inc() }
func StoreRejected(op string) { storeRejected.WithLabelValues(op).Inc() }
func SetNodes(n int)          { nodesGauge.Set(float64(n)) }
func SetEdges(n int)          { edgesGauge.Set(float64(n)) }

// Gesture helpers
func GestureCommitted(gesture string) { gesturesCommitted.WithLabelValues(gesture).Inc() }
func GestureAborted(gesture, reason string) {
	gesturesAborted.WithLabelValues(gesture, reason).Inc()
}

// Collectors exposes the vectors for tests and custom registries.
var Collectors = struct {
	StoreMutations    *prometheus.CounterVec
	StoreMisses       *prometheus.CounterVec
	StoreRejected     *prometheus.CounterVec
	GesturesCommitted *prometheus.CounterVec
	GesturesAborted   *prometheus.CounterVec
}{
	StoreMutations:    storeMutations,
	StoreMisses:       storeMisses,
	StoreRejected:     storeRejected,
	GesturesCommitted: gesturesCommitted,
	GesturesAborted:   gesturesAborted,
}
