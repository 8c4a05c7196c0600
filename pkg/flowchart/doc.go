// Package flowchart provides a minimal public façade over the flowchart
// graph state engine. It re-exports the core entity types and exposes a
// Session that wires the graph store, the gesture handlers and the renderer
// bridge from one configuration.
package flowchart
