package flowchart

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/app/services"
	"github.com/Tbit256/Process-Flowchart/internal/app/usecases"
	coregraph "github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/config"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
	"github.com/Tbit256/Process-Flowchart/pkg/wire"
)

// Re-export core graph types for convenience
type (
	Node       = coregraph.Node
	Edge       = coregraph.Edge
	NodeKind   = coregraph.NodeKind
	Position   = coregraph.Position
	Connection = coregraph.Connection
	EdgeStyle  = coregraph.EdgeStyle
	ArrowEnd   = coregraph.ArrowEnd
	NodeChange = coregraph.NodeChange
	EdgeChange = coregraph.EdgeChange
	Snapshot   = services.Snapshot
	Rect       = dto.Rect
	DropEvent  = dto.DropEvent
)

// Session is one editing canvas: a graph store plus the gesture handlers
// that drive it. The zero value is not usable; call NewSession.
type Session struct {
	store     *services.GraphStore
	palette   *usecases.PaletteDrop
	connector *usecases.ConnectionDrag
	inspector *usecases.EdgeInspector
	bridge    *wire.Bridge
	logger    *zap.Logger
}

// NewSession builds a session from cfg. A nil cfg means config.Default(), a
// nil logger discards logs and a nil canvas places drops at client
// coordinates.
func NewSession(cfg *config.Config, logger *zap.Logger, canvas usecases.CanvasBounds) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session configuration: %w", err)
	}
	logger = logging.OrNop(logger)
	if canvas == nil {
		canvas = usecases.FixedCanvas{}
	}

	format, err := wire.FormatByName(cfg.Wire.Codec)
	if err != nil {
		return nil, err
	}
	compression, err := wire.ParseCompression(cfg.Wire.Compression)
	if err != nil {
		return nil, err
	}
	pipeline, err := wire.NewPipeline(format, compression)
	if err != nil {
		return nil, err
	}

	store := services.NewGraphStore(
		services.WithLogger(logger.Named("store")),
		services.WithEdgeIDPrefix(cfg.Session.EdgeIDPrefix),
		services.WithDefaultEdgeColor(cfg.Session.DefaultEdgeColor),
		services.WithCascadeNodeRemoval(cfg.Session.CascadeNodeRemoval),
	)
	gestures := logger.Named("gesture")

	return &Session{
		store:     store,
		palette:   usecases.NewPaletteDrop(store, canvas, usecases.NewIDSequence(cfg.Session.NodeIDPrefix), gestures),
		connector: usecases.NewConnectionDrag(store, gestures),
		inspector: usecases.NewEdgeInspector(store, gestures),
		bridge:    wire.NewBridge(pipeline),
		logger:    logger,
	}, nil
}

// Close releases the wire pipeline.
func (s *Session) Close() { s.bridge.Close() }

// Store returns the underlying graph store.
func (s *Session) Store() *services.GraphStore { return s.store }

// Snapshot returns the current diagram.
func (s *Session) Snapshot() Snapshot { return s.store.Snapshot() }

// Palette returns the drop handler.
func (s *Session) Palette() *usecases.PaletteDrop { return s.palette }

// Connector returns the connection drag handler.
func (s *Session) Connector() *usecases.ConnectionDrag { return s.connector }

// Inspector returns the session's edge inspector.
func (s *Session) Inspector() *usecases.EdgeInspector { return s.inspector }

// NodeLabelEditor returns an editor bound to the label of node id.
func (s *Session) NodeLabelEditor(id string) *usecases.LabelEditor {
	return usecases.NewNodeLabelEditor(s.store, id, s.logger.Named("gesture"))
}

// EdgeLabelEditor returns an editor bound to the label of edge id.
func (s *Session) EdgeLabelEditor(id string) *usecases.LabelEditor {
	return usecases.NewEdgeLabelEditor(s.store, id, s.logger.Named("gesture"))
}

// DetailsMenu returns the details menu of node id.
func (s *Session) DetailsMenu(id string) *usecases.DetailsMenu {
	return usecases.NewDetailsMenu(s.store, id, s.logger.Named("gesture"))
}

// ApplyNodeChanges decodes a renderer change batch and applies it. A batch
// with any malformed descriptor is rejected whole.
func (s *Session) ApplyNodeChanges(payload []byte) (bool, error) {
	changes, err := s.bridge.DecodeNodeChanges(payload)
	if err != nil {
		s.logger.Debug("node change batch rejected", zap.Error(err))
		return false, err
	}
	return s.store.ApplyNodeChanges(changes), nil
}

// ApplyEdgeChanges decodes an edge change batch and applies it.
func (s *Session) ApplyEdgeChanges(payload []byte) (bool, error) {
	changes, err := s.bridge.DecodeEdgeChanges(payload)
	if err != nil {
		s.logger.Debug("edge change batch rejected", zap.Error(err))
		return false, err
	}
	return s.store.ApplyEdgeChanges(changes), nil
}

// Connect decodes a connect event and completes the connection gesture. The
// returned edge is a copy; edit it through the inspector.
func (s *Session) Connect(payload []byte) (*Edge, bool, error) {
	conn, err := s.bridge.DecodeConnection(payload)
	if err != nil {
		return nil, false, err
	}
	edge, ok := s.connector.Complete(conn)
	return edge, ok, nil
}

// Frame encodes the current snapshot for the renderer.
func (s *Session) Frame() ([]byte, error) {
	return s.bridge.EncodeFrame(s.store.Snapshot().Frame())
}

// DecodeFrame is the renderer side of Frame.
func (s *Session) DecodeFrame(data []byte) (wire.Frame, error) {
	return s.bridge.DecodeFrame(data)
}

// DanglingEdges returns copies of the edges whose endpoints were removed.
func (s *Session) DanglingEdges() []*Edge {
	snap := s.store.Snapshot()
	var out []*Edge
	for _, e := range coregraph.DanglingEdges(snap.Nodes, snap.Edges) {
		out = append(out, e.Clone())
	}
	return out
}
