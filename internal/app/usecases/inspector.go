package usecases

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
)

var styleLabels = map[graph.EdgeStyle]string{
	graph.EdgeStyleBezier:     "Curved",
	graph.EdgeStyleStraight:   "Straight",
	graph.EdgeStyleStep:       "Step",
	graph.EdgeStyleSmoothStep: "Smooth Step",
	graph.EdgeStyleDefault:    "Default",
}

// StyleOptions lists the style selector entries in display order.
func StyleOptions() []dto.StyleOption {
	out := make([]dto.StyleOption, 0, len(graph.EdgeStyles))
	for _, s := range graph.EdgeStyles {
		out = append(out, dto.StyleOption{Value: s, Label: styleLabels[s]})
	}
	return out
}

// ColorPalette lists the colors the inspector offers.
func ColorPalette() []dto.ColorOption {
	return []dto.ColorOption{
		{Name: "Gray", Value: graph.DefaultEdgeColor},
		{Name: "Blue", Value: "#3b82f6"},
		{Name: "Green", Value: "#22c55e"},
		{Name: "Red", Value: "#ef4444"},
		{Name: "Yellow", Value: "#eab308"},
	}
}

// EdgeInspector is the popover that edits one edge. Every setter writes to
// the store immediately; closing the popover writes nothing.
type EdgeInspector struct {
	store  GraphStore
	logger *zap.Logger

	edgeID string
}

// NewEdgeInspector creates a closed inspector
func NewEdgeInspector(store GraphStore, logger *zap.Logger) *EdgeInspector {
	return &EdgeInspector{store: store, logger: logging.OrNop(logger)}
}

// Open binds the inspector to edge id. It stays closed when the edge does
// not exist.
func (i *EdgeInspector) Open(id string) bool {
	if i.store.Snapshot().Edge(id) == nil {
		aborted(i.logger, GestureInspector, dto.ErrTargetGone, zap.String("edgeID", id))
		return false
	}
	i.edgeID = id
	return true
}

// IsOpen reports whether the inspector is bound to an edge.
func (i *EdgeInspector) IsOpen() bool { return i.edgeID != "" }

// Close unbinds the inspector.
func (i *EdgeInspector) Close() { i.edgeID = "" }

// View reads the bound edge. It returns false when the inspector is closed
// or the edge has been removed meanwhile.
func (i *EdgeInspector) View() (dto.InspectorView, bool) {
	if !i.IsOpen() {
		return dto.InspectorView{}, false
	}
	e := i.store.Snapshot().Edge(i.edgeID)
	if e == nil {
		return dto.InspectorView{}, false
	}
	return dto.InspectorView{
		EdgeID:      e.ID,
		Style:       e.Style,
		Color:       e.Color,
		Label:       e.Label,
		SourceArrow: e.SourceArrow,
		TargetArrow: e.TargetArrow,
	}, true
}

// SetStyle writes the edge style.
func (i *EdgeInspector) SetStyle(style graph.EdgeStyle) bool {
	return i.write("style", func(id string) (bool, error) { return i.store.UpdateEdgeStyle(id, style) })
}

// SetColor writes the edge color.
func (i *EdgeInspector) SetColor(color string) bool {
	return i.write("color", func(id string) (bool, error) { return i.store.UpdateEdgeColor(id, color) })
}

// SetLabel writes the edge label on every keystroke.
func (i *EdgeInspector) SetLabel(label string) bool {
	return i.write("label", func(id string) (bool, error) { return i.store.UpdateEdgeLabel(id, label) })
}

// ToggleArrow flips the arrowhead at one end.
func (i *EdgeInspector) ToggleArrow(end graph.ArrowEnd) bool {
	return i.write("arrow", func(id string) (bool, error) { return i.store.ToggleEdgeArrow(id, end) })
}

func (i *EdgeInspector) write(field string, fn func(id string) (bool, error)) bool {
	if !i.IsOpen() {
		aborted(i.logger, GestureInspector, dto.ErrInspectorClosed, zap.String("field", field))
		return false
	}
	ok, err := fn(i.edgeID)
	if err != nil {
		aborted(i.logger, GestureInspector, fmt.Errorf("%w: %w", dto.ErrRejected, err), zap.String("field", field))
		return false
	}
	if !ok {
		aborted(i.logger, GestureInspector, dto.ErrTargetGone, zap.String("edgeID", i.edgeID))
		return false
	}
	committed(i.logger, GestureInspector, zap.String("edgeID", i.edgeID), zap.String("field", field))
	return true
}
