package dto

import "github.com/Tbit256/Process-Flowchart/internal/core/graph"

// NodeTypeFormat is the data transfer format the palette writes the node kind under.
const NodeTypeFormat = "application/reactflow"

// DropEffectMove is the only drop effect the canvas accepts.
const DropEffectMove = "move"

// DataTransfer is the payload carried by a drag, keyed by format.
type DataTransfer map[string]string

// GetData returns the value stored under format, or "".
func (d DataTransfer) GetData(format string) string { return d[format] }

// Rect is an axis-aligned rectangle in client coordinates
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DropEvent is a palette item released over the canvas
type DropEvent struct {
	Data    DataTransfer `json:"data" yaml:"data"`
	ClientX float64      `json:"clientX" yaml:"clientX"`
	ClientY float64      `json:"clientY" yaml:"clientY"`
}

// DragStart is what the palette hands the renderer when an item is picked up
type DragStart struct {
	Data          DataTransfer `json:"data"`
	EffectAllowed string       `json:"effectAllowed"`
}

// PaletteItem is one draggable entry of the palette
type PaletteItem struct {
	Kind  graph.NodeKind `json:"kind"`
	Label string         `json:"label"`
}

// ConnectStart records the anchor a connection drag began at
type ConnectStart struct {
	NodeID     string           `json:"nodeId" yaml:"nodeId"`
	HandleID   string           `json:"handleId,omitempty" yaml:"handleId,omitempty"`
	HandleType graph.HandleType `json:"handleType" yaml:"handleType"`
}

// LabelTarget says which entity a label editor writes to
type LabelTarget string

const (
	LabelTargetNode LabelTarget = "node"
	LabelTargetEdge LabelTarget = "edge"
)

// InspectorView is what the edge inspector displays
type InspectorView struct {
	EdgeID      string          `json:"edgeId"`
	Style       graph.EdgeStyle `json:"style"`
	Color       string          `json:"color"`
	Label       string          `json:"label"`
	SourceArrow bool            `json:"sourceArrow"`
	TargetArrow bool            `json:"targetArrow"`
}

// StyleOption is an entry of the inspector's style selector
type StyleOption struct {
	Value graph.EdgeStyle `json:"value"`
	Label string          `json:"label"`
}

// ColorOption is an entry of the inspector's color palette
type ColorOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
