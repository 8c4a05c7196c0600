// Package metrics exposes Prometheus counters and gauges for the graph store
// and the gesture adapter. Collectors register on the default registry; a
// host exposes them with promhttp if it wants to.
package metrics
