package usecases

import (
	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/app/services"
	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
)

// GraphStore is the part of the store the gesture adapter drives
// PRINCIPLES:
// - DIP: Gestures depend on this contract, not on services.GraphStore
// - ISP: Only the operations gestures actually issue
type GraphStore interface {
	Snapshot() services.Snapshot

	AddNode(node *graph.Node) error
	Connect(conn graph.Connection) (*graph.Edge, error)
	UpdateNodeLabel(id, label string) (bool, error)

	UpdateEdgeStyle(id string, style graph.EdgeStyle) (bool, error)
	UpdateEdgeColor(id, color string) (bool, error)
	UpdateEdgeLabel(id, label string) (bool, error)
	ToggleEdgeArrow(id string, end graph.ArrowEnd) (bool, error)

	AddAssignee(id, name string) bool
	RemoveAssignee(id, name string) bool
	CycleAutomation(id string) bool
	ToggleApp(id, app string) bool
	AddCustomApp(id, app string) bool
}

// CanvasBounds reports where the canvas sits in client coordinates. ok is
// false while the canvas is not mounted.
type CanvasBounds interface {
	Bounds() (rect dto.Rect, ok bool)
}

// CanvasBoundsFunc adapts a function to CanvasBounds
type CanvasBoundsFunc func() (dto.Rect, bool)

// Bounds calls f.
func (f CanvasBoundsFunc) Bounds() (dto.Rect, bool) { return f() }

// FixedCanvas is a canvas that never moves
type FixedCanvas dto.Rect

// Bounds returns the fixed rectangle.
func (c FixedCanvas) Bounds() (dto.Rect, bool) { return dto.Rect(c), true }

var _ GraphStore = (*services.GraphStore)(nil)
