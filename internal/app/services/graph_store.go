package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/metrics"
	"github.com/Tbit256/Process-Flowchart/pkg/validation"
	"github.com/Tbit256/Process-Flowchart/pkg/wire"
)

// Snapshot is a read-only view of the store at one point in time. Callers
// must not mutate the returned slices or the entities they hold; use Clone
// on an entity before handing it to code that may write to it.
type Snapshot struct {
	Nodes         []*graph.Node
	Edges         []*graph.Edge
	NodesRevision uint64
	EdgesRevision uint64
}

// Node returns the node with id, or nil.
func (s Snapshot) Node(id string) *graph.Node { return graph.FindNode(s.Nodes, id) }

// Edge returns the edge with id, or nil.
func (s Snapshot) Edge(id string) *graph.Edge { return graph.FindEdge(s.Edges, id) }

// Frame converts the snapshot into its wire form.
func (s Snapshot) Frame() wire.Frame {
	return wire.Frame{
		NodesRevision: s.NodesRevision,
		EdgesRevision: s.EdgesRevision,
		Nodes:         s.Nodes,
		Edges:         s.Edges,
	}
}

// ChangeHook is called after a replacement collection has been installed.
type ChangeHook func(op string, snap Snapshot)

type hookEntry struct {
	id   int
	hook ChangeHook
}

// StoreOption configures a GraphStore
type StoreOption func(*GraphStore)

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *GraphStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEdgeIDFunc replaces the edge id generator
func WithEdgeIDFunc(fn func() string) StoreOption {
	return func(s *GraphStore) {
		if fn != nil {
			s.newEdgeID = fn
		}
	}
}

// WithEdgeIDPrefix keeps the uuid generator but changes its prefix
func WithEdgeIDPrefix(prefix string) StoreOption {
	return func(s *GraphStore) {
		s.newEdgeID = func() string { return prefix + uuid.NewString() }
	}
}

// WithDefaultEdgeColor sets the color given to newly connected edges
func WithDefaultEdgeColor(color string) StoreOption {
	return func(s *GraphStore) {
		if color != "" {
			s.defaultEdgeColor = color
		}
	}
}

// WithCascadeNodeRemoval makes node removal also drop incident edges
func WithCascadeNodeRemoval(enabled bool) StoreOption {
	return func(s *GraphStore) { s.cascade = enabled }
}

// GraphStore owns the canonical node and edge collections. Every operation
// runs a pure transition from the graph package and, when the result is a
// new collection, installs it as one atomic replacement.
type GraphStore struct {
	mu            sync.Mutex
	nodes         []*graph.Node
	edges         []*graph.Edge
	nodesRevision uint64
	edgesRevision uint64

	hooks      []hookEntry
	nextHookID int

	newEdgeID        func() string
	defaultEdgeColor string
	cascade          bool
	logger           *zap.Logger
}

// NewGraphStore creates an empty store
func NewGraphStore(opts ...StoreOption) *GraphStore {
	s := &GraphStore{
		newEdgeID:        func() string { return "edge-" + uuid.NewString() },
		defaultEdgeColor: graph.DefaultEdgeColor,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers hook and returns a function that removes it. Hooks run
// synchronously, in registration order, only when something was installed.
func (s *GraphStore) Subscribe(hook ChangeHook) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHookID++
	id := s.nextHookID
	s.hooks = append(s.hooks, hookEntry{id: id, hook: hook})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, h := range s.hooks {
			if h.id == id {
				s.hooks = append(s.hooks[:i:i], s.hooks[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns the current collections and their revisions.
func (s *GraphStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Seed replaces both collections with a validated initial diagram.
func (s *GraphStore) Seed(nodes []*graph.Node, edges []*graph.Edge) error {
	if err := validation.ValidateDiagram(nodes, edges, validation.DiagramValidationOptions{CheckEndpoints: true}); err != nil {
		metrics.StoreRejected("seed")
		return fmt.Errorf("seed rejected: %w", err)
	}
	nodes = cloneAll(nodes, (*graph.Node).Clone)
	edges = cloneAll(edges, (*graph.Edge).Clone)
	_, _, err := s.commit("seed", func([]*graph.Node, []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		return nodes, edges, nil
	})
	return err
}

// ApplyNodeChanges applies a renderer change batch to the nodes. With cascade
// enabled, edges incident to removed nodes are dropped in the same install.
func (s *GraphStore) ApplyNodeChanges(changes []graph.NodeChange) bool {
	_, changed, _ := s.commit("apply_node_changes", func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		next := graph.ApplyNodeChanges(changes, nodes)
		if s.cascade && !graph.SameCollection(nodes, next) {
			edges = graph.RemoveEdgesTouching(graph.RemovedNodeIDs(nodes, next), edges)
		}
		return next, edges, nil
	})
	return changed
}

// ApplyEdgeChanges applies a renderer change batch to the edges.
func (s *GraphStore) ApplyEdgeChanges(changes []graph.EdgeChange) bool {
	_, changed, _ := s.commit("apply_edge_changes", func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		return nodes, graph.ApplyEdgeChanges(changes, edges), nil
	})
	return changed
}

// Connect appends a default-styled edge between two existing nodes and
// returns a copy of it. Self loops and repeated pairs are accepted.
func (s *GraphStore) Connect(conn graph.Connection) (*graph.Edge, error) {
	if err := validation.ValidateConnection(conn); err != nil {
		metrics.StoreRejected("connect")
		return nil, err
	}

	var created *graph.Edge
	_, _, err := s.commit("connect", func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		if graph.FindNode(nodes, conn.Source) == nil {
			return nil, nil, fmt.Errorf("%w: %s", graph.ErrSourceNodeNotFound, conn.Source)
		}
		if graph.FindNode(nodes, conn.Target) == nil {
			return nil, nil, fmt.Errorf("%w: %s", graph.ErrTargetNodeNotFound, conn.Target)
		}
		next := graph.Connect(conn, edges, s.newEdgeID())
		created = next[len(next)-1]
		created.Color = s.defaultEdgeColor
		return nodes, next, nil
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// AddNode appends a validated node. Duplicate ids are rejected.
func (s *GraphStore) AddNode(node *graph.Node) error {
	if err := validation.ValidateNode(node); err != nil {
		metrics.StoreRejected("add_node")
		return err
	}
	_, _, err := s.commit("add_node", func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		next, err := graph.AddNode(node, nodes)
		return next, edges, err
	})
	return err
}

// UpdateNodeLabel replaces the label of node id.
func (s *GraphStore) UpdateNodeLabel(id, label string) (bool, error) {
	if err := validation.ValidateLabel(label); err != nil {
		metrics.StoreRejected("update_node_label")
		return false, err
	}
	return s.updateNodes("update_node_label", func(nodes []*graph.Node) []*graph.Node {
		return graph.UpdateNodeLabel(id, label, nodes)
	}), nil
}

// UpdateEdgeStyle replaces the style of edge id.
func (s *GraphStore) UpdateEdgeStyle(id string, style graph.EdgeStyle) (bool, error) {
	if !style.Valid() {
		metrics.StoreRejected("update_edge_style")
		return false, fmt.Errorf("%w: %q", graph.ErrInvalidEdgeStyle, style)
	}
	return s.updateEdges("update_edge_style", func(edges []*graph.Edge) []*graph.Edge {
		return graph.UpdateEdgeStyle(id, style, edges)
	}), nil
}

// UpdateEdgeColor replaces the color of edge id with a #rrggbb value.
func (s *GraphStore) UpdateEdgeColor(id, color string) (bool, error) {
	if err := validation.ValidateColor(color); err != nil {
		metrics.StoreRejected("update_edge_color")
		return false, err
	}
	return s.updateEdges("update_edge_color", func(edges []*graph.Edge) []*graph.Edge {
		return graph.UpdateEdgeColor(id, color, edges)
	}), nil
}

// UpdateEdgeLabel replaces the label of edge id.
func (s *GraphStore) UpdateEdgeLabel(id, label string) (bool, error) {
	if err := validation.ValidateLabel(label); err != nil {
		metrics.StoreRejected("update_edge_label")
		return false, err
	}
	return s.updateEdges("update_edge_label", func(edges []*graph.Edge) []*graph.Edge {
		return graph.UpdateEdgeLabel(id, label, edges)
	}), nil
}

// ToggleEdgeArrow flips the arrowhead at one end of edge id.
func (s *GraphStore) ToggleEdgeArrow(id string, end graph.ArrowEnd) (bool, error) {
	if !end.Valid() {
		metrics.StoreRejected("toggle_edge_arrow")
		return false, fmt.Errorf("%w: %q", graph.ErrInvalidArrowEnd, end)
	}
	return s.updateEdges("toggle_edge_arrow", func(edges []*graph.Edge) []*graph.Edge {
		return graph.ToggleEdgeArrow(id, end, edges)
	}), nil
}

// AddAssignee adds a trimmed, non-duplicate assignee to node id.
func (s *GraphStore) AddAssignee(id, name string) bool {
	return s.updateNodes("add_assignee", func(nodes []*graph.Node) []*graph.Node {
		return graph.AddAssignee(id, name, nodes)
	})
}

// RemoveAssignee removes an assignee from node id.
func (s *GraphStore) RemoveAssignee(id, name string) bool {
	return s.updateNodes("remove_assignee", func(nodes []*graph.Node) []*graph.Node {
		return graph.RemoveAssignee(id, name, nodes)
	})
}

// CycleAutomation advances the automation status of node id.
func (s *GraphStore) CycleAutomation(id string) bool {
	return s.updateNodes("cycle_automation", func(nodes []*graph.Node) []*graph.Node {
		return graph.CycleAutomation(id, nodes)
	})
}

// ToggleApp selects or deselects a catalog application on node id.
func (s *GraphStore) ToggleApp(id, app string) bool {
	return s.updateNodes("toggle_app", func(nodes []*graph.Node) []*graph.Node {
		return graph.ToggleApp(id, app, nodes)
	})
}

// AddCustomApp extends the catalog of node id and selects the new entry.
func (s *GraphStore) AddCustomApp(id, app string) bool {
	return s.updateNodes("add_custom_app", func(nodes []*graph.Node) []*graph.Node {
		return graph.AddCustomApp(id, app, nodes)
	})
}

func (s *GraphStore) updateNodes(op string, fn func([]*graph.Node) []*graph.Node) bool {
	_, changed, _ := s.commit(op, func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		return fn(nodes), edges, nil
	})
	return changed
}

func (s *GraphStore) updateEdges(op string, fn func([]*graph.Edge) []*graph.Edge) bool {
	_, changed, _ := s.commit(op, func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error) {
		return nodes, fn(edges), nil
	})
	return changed
}

type transition func(nodes []*graph.Node, edges []*graph.Edge) ([]*graph.Node, []*graph.Edge, error)

// commit runs fn against the current collections and installs whichever of
// its results is a new collection. Hooks run after the lock is released.
func (s *GraphStore) commit(op string, fn transition) (Snapshot, bool, error) {
	s.mu.Lock()
	nodes, edges, err := fn(s.nodes, s.edges)
	if err != nil {
		s.mu.Unlock()
		metrics.StoreRejected(op)
		s.logger.Debug("store operation rejected", zap.String("op", op), zap.Error(err))
		return Snapshot{}, false, err
	}

	nodesChanged := !graph.SameCollection(s.nodes, nodes)
	edgesChanged := !graph.SameCollection(s.edges, edges)
	if !nodesChanged && !edgesChanged {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		metrics.StoreMiss(op)
		s.logger.Debug("store operation changed nothing", zap.String("op", op))
		return snap, false, nil
	}

	if nodesChanged {
		s.nodes = nodes
		s.nodesRevision++
	}
	if edgesChanged {
		s.edges = edges
		s.edgesRevision++
	}
	snap := s.snapshotLocked()
	hooks := append([]hookEntry(nil), s.hooks...)
	s.mu.Unlock()

	metrics.StoreMutation(op)
	metrics.SetNodes(len(snap.Nodes))
	metrics.SetEdges(len(snap.Edges))
	s.logger.Debug("collections installed",
		zap.String("op", op),
		zap.Uint64("nodesRevision", snap.NodesRevision),
		zap.Uint64("edgesRevision", snap.EdgesRevision),
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
	)

	for _, h := range hooks {
		h.hook(op, snap)
	}
	return snap, true, nil
}

func cloneAll[T any](in []*T, clone func(*T) *T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func (s *GraphStore) snapshotLocked() Snapshot {
	return Snapshot{
		Nodes:         s.nodes,
		Edges:         s.edges,
		NodesRevision: s.nodesRevision,
		EdgesRevision: s.edgesRevision,
	}
}
