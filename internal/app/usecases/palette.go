package usecases

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
)

// maxIDSkips bounds how many minted ids a drop skips when seeded nodes
// already occupy them.
const maxIDSkips = 1024

// PaletteItems lists the draggable node kinds in palette order.
func PaletteItems() []dto.PaletteItem {
	items := make([]dto.PaletteItem, 0, len(graph.NodeKinds))
	for _, k := range graph.NodeKinds {
		items = append(items, dto.PaletteItem{Kind: k, Label: k.DefaultLabel()})
	}
	return items
}

// StartDrag builds the payload the palette attaches to a drag of kind.
func StartDrag(kind graph.NodeKind) dto.DragStart {
	return dto.DragStart{
		Data:          dto.DataTransfer{dto.NodeTypeFormat: string(kind)},
		EffectAllowed: dto.DropEffectMove,
	}
}

// PaletteDrop turns a palette item released over the canvas into a new node
type PaletteDrop struct {
	store  GraphStore
	canvas CanvasBounds
	ids    *IDSequence
	logger *zap.Logger
}

// NewPaletteDrop creates the drop handler
func NewPaletteDrop(store GraphStore, canvas CanvasBounds, ids *IDSequence, logger *zap.Logger) *PaletteDrop {
	return &PaletteDrop{store: store, canvas: canvas, ids: ids, logger: logging.OrNop(logger)}
}

// DragOver returns the drop effect the canvas advertises while a drag hovers.
func (p *PaletteDrop) DragOver() string { return dto.DropEffectMove }

// Drop creates a node of the dropped kind at the drop point in canvas
// coordinates and returns a copy of it. It returns false when the drop was
// ignored.
func (p *PaletteDrop) Drop(ev dto.DropEvent) (*graph.Node, bool) {
	node, err := p.drop(ev)
	if err != nil {
		aborted(p.logger, GesturePaletteDrop, err)
		return nil, false
	}
	committed(p.logger, GesturePaletteDrop, zap.String("nodeID", node.ID), zap.String("kind", string(node.Kind)))
	return node, true
}

func (p *PaletteDrop) drop(ev dto.DropEvent) (*graph.Node, error) {
	token := ev.Data.GetData(dto.NodeTypeFormat)
	if token == "" {
		return nil, dto.ErrMissingNodeType
	}
	kind, ok := graph.ParseNodeKind(token)
	if !ok {
		return nil, fmt.Errorf("%w: %q", dto.ErrUnknownNodeType, token)
	}
	if p.canvas == nil {
		return nil, dto.ErrCanvasUnavailable
	}
	bounds, ok := p.canvas.Bounds()
	if !ok {
		return nil, dto.ErrCanvasUnavailable
	}

	pos := graph.Position{X: ev.ClientX - bounds.X, Y: ev.ClientY - bounds.Y}
	existing := p.store.Snapshot()
	for i := 0; i < maxIDSkips; i++ {
		id := p.ids.Next()
		if existing.Node(id) != nil {
			continue
		}
		node := graph.NewNode(id, kind, pos)
		if err := p.store.AddNode(node); err != nil {
			if errors.Is(err, graph.ErrDuplicateNode) {
				continue
			}
			return nil, fmt.Errorf("%w: %w", dto.ErrRejected, err)
		}
		if stored := p.store.Snapshot().Node(id); stored != nil {
			return stored.Clone(), nil
		}
		return node, nil
	}
	return nil, fmt.Errorf("%w: no free node id", dto.ErrRejected)
}
