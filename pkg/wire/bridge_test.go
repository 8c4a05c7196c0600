package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coregraph "github.com/Tbit256/Process-Flowchart/internal/core/graph"
)

func TestBridge_DecodeNodeChanges(t *testing.T) {
	b := NewBridge(nil)

	payload := []byte(`[
		{"type":"position","id":"node_1","position":{"x":10,"y":20},"dragging":true},
		{"type":"select","id":"node_2","selected":true},
		{"type":"dimensions","id":"node_1","dimensions":{"width":180,"height":64}},
		{"type":"remove","id":"node_3"}
	]`)

	changes, err := b.DecodeNodeChanges(payload)
	require.NoError(t, err)
	require.Len(t, changes, 4)

	assert.Equal(t, coregraph.NodePositionChange{ID: "node_1", Position: &coregraph.Position{X: 10, Y: 20}, Dragging: true}, changes[0])
	assert.Equal(t, coregraph.NodeSelectChange{ID: "node_2", Selected: true}, changes[1])
	assert.Equal(t, coregraph.NodeDimensionsChange{ID: "node_1", Width: 180, Height: 64}, changes[2])
	assert.Equal(t, coregraph.NodeRemoveChange{ID: "node_3"}, changes[3])
}

func TestBridge_DecodeNodeChanges_RejectsWholeBatch(t *testing.T) {
	b := NewBridge(nil)

	tests := []struct {
		name    string
		payload string
	}{
		{"unknown type", `[{"type":"select","id":"a"},{"type":"add","id":"b"}]`},
		{"missing id", `[{"type":"remove"}]`},
		{"dimensions without size", `[{"type":"dimensions","id":"a"}]`},
		{"not an array", `{"type":"remove","id":"a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := b.DecodeNodeChanges([]byte(tt.payload))
			assert.Error(t, err)
			assert.Nil(t, changes)
		})
	}
}

func TestBridge_DecodeEdgeChanges(t *testing.T) {
	b := NewBridge(nil)

	changes, err := b.DecodeEdgeChanges([]byte(`[{"type":"select","id":"e1","selected":true},{"type":"remove","id":"e2"}]`))
	require.NoError(t, err)
	assert.Equal(t, []coregraph.EdgeChange{
		coregraph.EdgeSelectChange{ID: "e1", Selected: true},
		coregraph.EdgeRemoveChange{ID: "e2"},
	}, changes)

	_, err = b.DecodeEdgeChanges([]byte(`[{"type":"position","id":"e1"}]`))
	assert.Error(t, err)
}

func TestBridge_DecodeConnection(t *testing.T) {
	b := NewBridge(nil)

	conn, err := b.DecodeConnection([]byte(`{"source":"node_1","target":"node_2","sourceHandle":"true"}`))
	require.NoError(t, err)
	assert.Equal(t, coregraph.Connection{Source: "node_1", Target: "node_2", SourceHandle: "true"}, conn)

	_, err = b.DecodeConnection([]byte(`{"source":"node_1"}`))
	assert.ErrorIs(t, err, coregraph.ErrInvalidConnection)
}

func TestBridge_NodeChangesOverMsgPack(t *testing.T) {
	p, err := NewPipeline(MsgPack, CompressionZstd)
	require.NoError(t, err)
	defer p.Close()
	b := NewBridge(p)
	assert.Equal(t, "msgpack+zstd", b.Name())

	in := []coregraph.NodeChange{
		coregraph.NodePositionChange{ID: "node_1", Position: &coregraph.Position{X: 1, Y: 2}},
		coregraph.NodeDimensionsChange{ID: "node_1", Width: 3, Height: 4},
		coregraph.NodeRemoveChange{ID: "node_2"},
	}

	data, err := b.EncodeNodeChanges(in)
	require.NoError(t, err)

	out, err := b.DecodeNodeChanges(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	edges := []coregraph.EdgeChange{
		coregraph.EdgeSelectChange{ID: "edge-1", Selected: true},
		coregraph.EdgeRemoveChange{ID: "edge-2"},
	}
	data, err = b.EncodeEdgeChanges(edges)
	require.NoError(t, err)
	gotEdges, err := b.DecodeEdgeChanges(data)
	require.NoError(t, err)
	assert.Equal(t, edges, gotEdges)
}

func TestBridge_Frame(t *testing.T) {
	b := NewBridge(nil)

	empty, err := b.EncodeFrame(Frame{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodesRevision":0,"edgesRevision":0,"nodes":[],"edges":[]}`, string(empty))

	frame := Frame{
		NodesRevision: 2,
		EdgesRevision: 1,
		Nodes:         []*coregraph.Node{coregraph.NewNode("node_1", coregraph.NodeKindProcess, coregraph.Position{X: 100, Y: 50})},
		Edges:         []*coregraph.Edge{coregraph.NewEdge("edge-1", coregraph.Connection{Source: "node_1", Target: "node_1"})},
	}
	data, err := b.EncodeFrame(frame)
	require.NoError(t, err)

	got, err := b.DecodeFrame(data)
	require.NoError(t, err)
	assert.Equal(t, frame, got)
}
