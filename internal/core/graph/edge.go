// Package graph provides edge definitions
package graph

// EdgeStyle is the curve the renderer draws for an edge
type EdgeStyle string

const (
	// EdgeStyleBezier is a curved path and the default style
	EdgeStyleBezier EdgeStyle = "bezier"
	// EdgeStyleStraight is a straight segment
	EdgeStyleStraight EdgeStyle = "straight"
	// EdgeStyleStep is an orthogonal path with sharp corners
	EdgeStyleStep EdgeStyle = "step"
	// EdgeStyleSmoothStep is an orthogonal path with rounded corners
	EdgeStyleSmoothStep EdgeStyle = "smoothstep"
	// EdgeStyleDefault leaves the choice to the renderer
	EdgeStyleDefault EdgeStyle = "default"
)

// EdgeStyles lists every style in inspector order.
var EdgeStyles = []EdgeStyle{
	EdgeStyleBezier,
	EdgeStyleStraight,
	EdgeStyleStep,
	EdgeStyleSmoothStep,
	EdgeStyleDefault,
}

// Valid reports whether s is a known style.
func (s EdgeStyle) Valid() bool {
	for _, v := range EdgeStyles {
		if v == s {
			return true
		}
	}
	return false
}

// ArrowEnd selects one end of an edge
type ArrowEnd string

const (
	ArrowSource ArrowEnd = "source"
	ArrowTarget ArrowEnd = "target"
)

// Valid reports whether e names an edge end.
func (e ArrowEnd) Valid() bool {
	return e == ArrowSource || e == ArrowTarget
}

// DefaultEdgeColor is the neutral gray new edges are painted with.
const DefaultEdgeColor = "#64748b"

// Edge represents a directed connection between nodes
// PRINCIPLES:
// - KISS: Simple edge representation
// - SRP: Only responsible for edge data
type Edge struct {
	ID           string    `json:"id" msgpack:"id" validate:"required,max=128"`
	Source       string    `json:"source" msgpack:"source" validate:"required"`
	Target       string    `json:"target" msgpack:"target" validate:"required"`
	SourceHandle string    `json:"sourceHandle,omitempty" msgpack:"sourceHandle,omitempty" validate:"omitempty,handle_id"`
	TargetHandle string    `json:"targetHandle,omitempty" msgpack:"targetHandle,omitempty" validate:"omitempty,handle_id"`
	Style        EdgeStyle `json:"style" msgpack:"style" validate:"required,edge_style"`
	Color        string    `json:"color" msgpack:"color" validate:"required,hexcolor"`
	Label        string    `json:"label,omitempty" msgpack:"label,omitempty" validate:"max=512"`
	SourceArrow  bool      `json:"sourceArrow" msgpack:"sourceArrow"`
	TargetArrow  bool      `json:"targetArrow" msgpack:"targetArrow"`
	Selected     bool      `json:"selected,omitempty" msgpack:"selected,omitempty"`
}

// Connection is the candidate edge reported by a completed connection drag
type Connection struct {
	Source       string `json:"source" msgpack:"source" yaml:"source" validate:"required"`
	Target       string `json:"target" msgpack:"target" yaml:"target" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty" msgpack:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty" validate:"omitempty,handle_id"`
	TargetHandle string `json:"targetHandle,omitempty" msgpack:"targetHandle,omitempty" yaml:"targetHandle,omitempty" validate:"omitempty,handle_id"`
}

// NewEdge synthesizes an edge for a connection with default styling.
func NewEdge(id string, conn Connection) *Edge {
	return &Edge{
		ID:           id,
		Source:       conn.Source,
		Target:       conn.Target,
		SourceHandle: conn.SourceHandle,
		TargetHandle: conn.TargetHandle,
		Style:        EdgeStyleBezier,
		Color:        DefaultEdgeColor,
		TargetArrow:  true,
	}
}

func (e *Edge) clone() *Edge {
	c := *e
	return &c
}

// Clone returns a copy that shares nothing with e.
func (e *Edge) Clone() *Edge { return e.clone() }

// IsSelfLoop checks if the edge starts and ends on the same node
func (e *Edge) IsSelfLoop() bool {
	return e.Source == e.Target
}
