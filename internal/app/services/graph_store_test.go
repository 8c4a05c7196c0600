package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/metrics"
	"github.com/Tbit256/Process-Flowchart/pkg/validation"
)

func sequentialEdgeIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("edge-%d", n)
	}
}

func newTestStore(t *testing.T, opts ...StoreOption) *GraphStore {
	t.Helper()
	base := []StoreOption{WithLogger(zaptest.NewLogger(t)), WithEdgeIDFunc(sequentialEdgeIDs())}
	return NewGraphStore(append(base, opts...)...)
}

func seedTwoNodes(t *testing.T, s *GraphStore) {
	t.Helper()
	require.NoError(t, s.AddNode(graph.NewNode("node_1", graph.NodeKindProcess, graph.Position{X: 100, Y: 50})))
	require.NoError(t, s.AddNode(graph.NewNode("node_2", graph.NodeKindEnd, graph.Position{X: 300, Y: 50})))
}

func TestGraphStore_EditorScenario(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddNode(graph.NewNode("node_1", graph.NodeKindProcess, graph.Position{X: 100, Y: 50})))
	snap := s.Snapshot()
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "Process", snap.Nodes[0].Label)
	assert.Equal(t, graph.Position{X: 100, Y: 50}, snap.Nodes[0].Position)

	require.NoError(t, s.AddNode(graph.NewNode("node_2", graph.NodeKindEnd, graph.Position{X: 300, Y: 50})))

	edge, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)
	assert.Equal(t, "edge-1", edge.ID)
	assert.Equal(t, graph.EdgeStyleBezier, edge.Style)
	assert.Equal(t, graph.DefaultEdgeColor, edge.Color)
	assert.True(t, edge.TargetArrow)
	assert.False(t, edge.SourceArrow)

	changed, err := s.UpdateEdgeStyle(edge.ID, graph.EdgeStyleStep)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = s.ToggleEdgeArrow(edge.ID, graph.ArrowSource)
	require.NoError(t, err)
	assert.True(t, changed)

	got := s.Snapshot().Edge(edge.ID)
	require.NotNil(t, got)
	assert.Equal(t, graph.EdgeStyleStep, got.Style)
	assert.True(t, got.SourceArrow)
	assert.True(t, got.TargetArrow)
	assert.Equal(t, graph.DefaultEdgeColor, got.Color)
	assert.Empty(t, got.Label)
}

func TestGraphStore_Revisions(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.NodesRevision)
	assert.Equal(t, uint64(0), snap.EdgesRevision)

	_, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)

	snap = s.Snapshot()
	assert.Equal(t, uint64(2), snap.NodesRevision)
	assert.Equal(t, uint64(1), snap.EdgesRevision)
}

func TestGraphStore_NoOpKeepsCollectionIdentity(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)
	before := s.Snapshot()

	changed, err := s.UpdateNodeLabel("ghost", "x")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, s.ApplyNodeChanges([]graph.NodeChange{graph.NodeRemoveChange{ID: "ghost"}}))
	assert.False(t, s.ApplyEdgeChanges([]graph.EdgeChange{graph.EdgeSelectChange{ID: "ghost", Selected: true}}))
	changed, err = s.ToggleEdgeArrow("ghost", graph.ArrowTarget)
	require.NoError(t, err)
	assert.False(t, changed)

	after := s.Snapshot()
	assert.True(t, graph.SameCollection(before.Nodes, after.Nodes))
	assert.True(t, graph.SameCollection(before.Edges, after.Edges))
	assert.Equal(t, before.NodesRevision, after.NodesRevision)
}

func TestGraphStore_BatchIsAtomic(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	var calls int
	unsubscribe := s.Subscribe(func(op string, snap Snapshot) {
		calls++
		assert.Equal(t, "apply_node_changes", op)
	})
	defer unsubscribe()

	changed := s.ApplyNodeChanges([]graph.NodeChange{
		graph.NodePositionChange{ID: "node_1", Position: &graph.Position{X: 1, Y: 1}, Dragging: true},
		graph.NodeSelectChange{ID: "node_1", Selected: true},
		graph.NodePositionChange{ID: "node_1", Position: &graph.Position{X: 2, Y: 2}},
	})
	assert.True(t, changed)
	assert.Equal(t, 1, calls)

	n := s.Snapshot().Node("node_1")
	assert.Equal(t, graph.Position{X: 2, Y: 2}, n.Position)
	assert.True(t, n.Selected)
	assert.False(t, n.Dragging)
}

func TestGraphStore_Subscribe(t *testing.T) {
	s := newTestStore(t)

	var ops []string
	unsubscribe := s.Subscribe(func(op string, _ Snapshot) { ops = append(ops, op) })

	seedTwoNodes(t, s)
	s.UpdateNodeLabel("ghost", "nothing")
	unsubscribe()
	s.UpdateNodeLabel("node_1", "Review")

	assert.Equal(t, []string{"add_node", "add_node"}, ops)
}

func TestGraphStore_HookMayReadStore(t *testing.T) {
	s := newTestStore(t)
	var seen int
	s.Subscribe(func(_ string, snap Snapshot) {
		seen = len(s.Snapshot().Nodes)
		assert.Len(t, snap.Nodes, seen)
	})
	seedTwoNodes(t, s)
	assert.Equal(t, 2, seen)
}

func TestGraphStore_AddNodeRejections(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	err := s.AddNode(graph.NewNode("node_1", graph.NodeKindDecision, graph.Position{}))
	assert.ErrorIs(t, err, graph.ErrDuplicateNode)

	err = s.AddNode(&graph.Node{ID: "node_9", Kind: "swimlane"})
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	err = s.AddNode(nil)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	assert.Len(t, s.Snapshot().Nodes, 2)
}

func TestGraphStore_ConnectRejections(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	tests := []struct {
		name    string
		conn    graph.Connection
		wantErr error
	}{
		{"missing source", graph.Connection{Target: "node_2"}, graph.ErrInvalidConnection},
		{"unknown source", graph.Connection{Source: "ghost", Target: "node_2"}, graph.ErrSourceNodeNotFound},
		{"unknown target", graph.Connection{Source: "node_1", Target: "ghost"}, graph.ErrTargetNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, err := s.Connect(tt.conn)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, edge)
		})
	}
	assert.Empty(t, s.Snapshot().Edges)
}

func TestGraphStore_ConnectAcceptsLoopsAndRepeats(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	for _, conn := range []graph.Connection{
		{Source: "node_1", Target: "node_1"},
		{Source: "node_1", Target: "node_2"},
		{Source: "node_1", Target: "node_2"},
	} {
		_, err := s.Connect(conn)
		require.NoError(t, err)
	}

	edges := s.Snapshot().Edges
	require.Len(t, edges, 3)
	assert.Equal(t, []string{"edge-1", "edge-2", "edge-3"}, []string{edges[0].ID, edges[1].ID, edges[2].ID})
}

func TestGraphStore_DefaultEdgeIDs(t *testing.T) {
	s := NewGraphStore(WithEdgeIDPrefix("e-"))
	seedTwoNodes(t, s)

	a, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)
	b, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)

	assert.True(t, len(a.ID) > len("e-"))
	assert.Equal(t, "e-", a.ID[:2])
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGraphStore_DefaultEdgeColorOption(t *testing.T) {
	s := newTestStore(t, WithDefaultEdgeColor("#3b82f6"))
	seedTwoNodes(t, s)

	e, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)
	assert.Equal(t, "#3b82f6", e.Color)
}

func TestGraphStore_EdgeEdits(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)
	e, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)

	_, err = s.UpdateEdgeStyle(e.ID, "zigzag")
	assert.ErrorIs(t, err, graph.ErrInvalidEdgeStyle)

	_, err = s.UpdateEdgeColor(e.ID, "red")
	assert.ErrorIs(t, err, graph.ErrInvalidEdgeColor)

	_, err = s.ToggleEdgeArrow(e.ID, "middle")
	assert.ErrorIs(t, err, graph.ErrInvalidArrowEnd)

	changed, err := s.UpdateEdgeColor(e.ID, "#ef4444")
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = s.UpdateEdgeLabel(e.ID, "yes")
	require.NoError(t, err)
	assert.True(t, changed)

	got := s.Snapshot().Edge(e.ID)
	assert.Equal(t, "#ef4444", got.Color)
	assert.Equal(t, "yes", got.Label)
	assert.Equal(t, graph.EdgeStyleBezier, got.Style)
}

func TestGraphStore_ConnectReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	e, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)
	before := s.Snapshot()

	e.Style = "not-a-style"
	e.Color = "red"

	got := s.Snapshot().Edge(e.ID)
	require.NotNil(t, got)
	assert.NotSame(t, e, got)
	assert.Equal(t, graph.EdgeStyleBezier, got.Style)
	assert.Equal(t, graph.DefaultEdgeColor, got.Color)
	assert.Equal(t, before.EdgesRevision, s.Snapshot().EdgesRevision)
}

func TestGraphStore_LabelLengthLimit(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)
	e, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)
	before := s.Snapshot()

	long := strings.Repeat("x", validation.MaxLabelLength+1)
	changed, err := s.UpdateNodeLabel("node_1", long)
	assert.ErrorIs(t, err, graph.ErrLabelTooLong)
	assert.False(t, changed)

	changed, err = s.UpdateEdgeLabel(e.ID, long)
	assert.ErrorIs(t, err, graph.ErrLabelTooLong)
	assert.False(t, changed)

	after := s.Snapshot()
	assert.Equal(t, before.NodesRevision, after.NodesRevision)
	assert.Equal(t, before.EdgesRevision, after.EdgesRevision)
	assert.NoError(t, validation.ValidateDiagram(after.Nodes, after.Edges))

	changed, err = s.UpdateNodeLabel("node_1", long[:validation.MaxLabelLength])
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestGraphStore_NodeRemovalLeavesEdgesByDefault(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)
	_, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)

	s.ApplyNodeChanges([]graph.NodeChange{graph.NodeRemoveChange{ID: "node_2"}})

	snap := s.Snapshot()
	assert.Len(t, snap.Nodes, 1)
	assert.Len(t, snap.Edges, 1)
	assert.Len(t, graph.DanglingEdges(snap.Nodes, snap.Edges), 1)
}

func TestGraphStore_CascadeNodeRemoval(t *testing.T) {
	s := newTestStore(t, WithCascadeNodeRemoval(true))
	seedTwoNodes(t, s)
	require.NoError(t, s.AddNode(graph.NewNode("node_3", graph.NodeKindStart, graph.Position{})))
	_, err := s.Connect(graph.Connection{Source: "node_1", Target: "node_2"})
	require.NoError(t, err)
	kept, err := s.Connect(graph.Connection{Source: "node_3", Target: "node_1"})
	require.NoError(t, err)

	var calls int
	s.Subscribe(func(string, Snapshot) { calls++ })

	s.ApplyNodeChanges([]graph.NodeChange{graph.NodeRemoveChange{ID: "node_2"}})

	snap := s.Snapshot()
	assert.Equal(t, 1, calls)
	assert.Len(t, snap.Nodes, 2)
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, kept.ID, snap.Edges[0].ID)
	assert.Empty(t, graph.DanglingEdges(snap.Nodes, snap.Edges))
}

func TestGraphStore_Details(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	assert.True(t, s.AddAssignee("node_1", "  Dana "))
	assert.False(t, s.AddAssignee("node_1", "Dana"))
	assert.True(t, s.CycleAutomation("node_1"))
	assert.True(t, s.ToggleApp("node_1", "Slack"))
	assert.True(t, s.AddCustomApp("node_1", "Zendesk"))

	d := s.Snapshot().Node("node_1").Details
	assert.Equal(t, []string{"Dana"}, d.Assignees)
	assert.Equal(t, graph.AutomationPartial, d.Automation)
	assert.Equal(t, []string{"Slack", "Zendesk"}, d.Apps)

	assert.True(t, s.RemoveAssignee("node_1", "Dana"))
	assert.Empty(t, s.Snapshot().Node("node_1").Details.Assignees)
	assert.False(t, s.CycleAutomation("ghost"))
}

func TestGraphStore_Seed(t *testing.T) {
	s := newTestStore(t)

	nodes := []*graph.Node{
		graph.NewNode("a", graph.NodeKindStart, graph.Position{}),
		graph.NewNode("b", graph.NodeKindEnd, graph.Position{X: 10}),
	}
	edges := []*graph.Edge{graph.NewEdge("ab", graph.Connection{Source: "a", Target: "b"})}

	require.NoError(t, s.Seed(nodes, edges))
	snap := s.Snapshot()
	assert.Len(t, snap.Nodes, 2)
	assert.Len(t, snap.Edges, 1)
	assert.Equal(t, uint64(1), snap.NodesRevision)

	err := s.Seed(nodes, []*graph.Edge{graph.NewEdge("ax", graph.Connection{Source: "a", Target: "x"})})
	assert.ErrorIs(t, err, graph.ErrTargetNodeNotFound)
	assert.Equal(t, "ab", s.Snapshot().Edges[0].ID)
}

func TestGraphStore_SeedCopiesInput(t *testing.T) {
	s := newTestStore(t)
	n := graph.NewNode("node_1", graph.NodeKindProcess, graph.Position{})
	e := graph.NewEdge("e1", graph.Connection{Source: "node_1", Target: "node_1"})
	require.NoError(t, s.Seed([]*graph.Node{n}, []*graph.Edge{e}))

	n.Label = "changed after seed"
	e.Style = graph.EdgeStyleStep

	snap := s.Snapshot()
	assert.Equal(t, "Process", snap.Node("node_1").Label)
	assert.Equal(t, graph.EdgeStyleBezier, snap.Edge("e1").Style)
}

func TestGraphStore_Metrics(t *testing.T) {
	s := newTestStore(t)

	mutations := testutil.ToFloat64(metrics.Collectors.StoreMutations.WithLabelValues("update_node_label"))
	misses := testutil.ToFloat64(metrics.Collectors.StoreMisses.WithLabelValues("update_node_label"))

	seedTwoNodes(t, s)
	s.UpdateNodeLabel("node_1", "Review")
	s.UpdateNodeLabel("ghost", "Review")

	assert.Equal(t, mutations+1, testutil.ToFloat64(metrics.Collectors.StoreMutations.WithLabelValues("update_node_label")))
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.Collectors.StoreMisses.WithLabelValues("update_node_label")))
}

func TestSnapshot_Frame(t *testing.T) {
	s := newTestStore(t)
	seedTwoNodes(t, s)

	f := s.Snapshot().Frame()
	assert.Equal(t, uint64(2), f.NodesRevision)
	assert.Len(t, f.Nodes, 2)
	assert.Empty(t, f.Edges)
}
