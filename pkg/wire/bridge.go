package wire

import (
	"fmt"

	coregraph "github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/pkg/validation"
)

// Change descriptor type tags as the renderer sends them.
const (
	ChangePosition   = "position"
	ChangeSelect     = "select"
	ChangeRemove     = "remove"
	ChangeDimensions = "dimensions"
)

// Dimensions is a measured node size
type Dimensions struct {
	Width  float64 `json:"width" msgpack:"width" validate:"min=0"`
	Height float64 `json:"height" msgpack:"height" validate:"min=0"`
}

// NodeChangeEnvelope is the wire form of one node change descriptor
type NodeChangeEnvelope struct {
	Type       string              `json:"type" msgpack:"type" validate:"required,oneof=position select remove dimensions"`
	ID         string              `json:"id" msgpack:"id" validate:"required"`
	Position   *coregraph.Position `json:"position,omitempty" msgpack:"position,omitempty"`
	Dragging   bool                `json:"dragging,omitempty" msgpack:"dragging,omitempty"`
	Selected   bool                `json:"selected,omitempty" msgpack:"selected,omitempty"`
	Dimensions *Dimensions         `json:"dimensions,omitempty" msgpack:"dimensions,omitempty" validate:"required_if=Type dimensions"`
}

// EdgeChangeEnvelope is the wire form of one edge change descriptor
type EdgeChangeEnvelope struct {
	Type     string `json:"type" msgpack:"type" validate:"required,oneof=select remove"`
	ID       string `json:"id" msgpack:"id" validate:"required"`
	Selected bool   `json:"selected,omitempty" msgpack:"selected,omitempty"`
}

// Frame is a full diagram snapshot sent to the renderer for painting
type Frame struct {
	NodesRevision uint64            `json:"nodesRevision" msgpack:"nodesRevision"`
	EdgesRevision uint64            `json:"edgesRevision" msgpack:"edgesRevision"`
	Nodes         []*coregraph.Node `json:"nodes" msgpack:"nodes"`
	Edges         []*coregraph.Edge `json:"edges" msgpack:"edges"`
}

// Bridge translates between renderer payloads and graph store types
type Bridge struct {
	pipeline *Pipeline
}

// NewBridge creates a bridge over pipeline; nil means Plain.
func NewBridge(pipeline *Pipeline) *Bridge {
	if pipeline == nil {
		pipeline = Plain()
	}
	return &Bridge{pipeline: pipeline}
}

// Name reports the pipeline in use.
func (b *Bridge) Name() string { return b.pipeline.Name() }

// Close releases the pipeline.
func (b *Bridge) Close() { b.pipeline.Close() }

// DecodeNodeChanges decodes a batch. One malformed descriptor rejects the
// whole batch so a partial batch is never applied.
func (b *Bridge) DecodeNodeChanges(data []byte) ([]coregraph.NodeChange, error) {
	var envs []NodeChangeEnvelope
	if err := b.pipeline.Decode(data, &envs); err != nil {
		return nil, err
	}
	out := make([]coregraph.NodeChange, 0, len(envs))
	for i, env := range envs {
		c, err := env.ToChange()
		if err != nil {
			return nil, fmt.Errorf("node change %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// DecodeEdgeChanges decodes an edge change batch with the same all-or-nothing rule.
func (b *Bridge) DecodeEdgeChanges(data []byte) ([]coregraph.EdgeChange, error) {
	var envs []EdgeChangeEnvelope
	if err := b.pipeline.Decode(data, &envs); err != nil {
		return nil, err
	}
	out := make([]coregraph.EdgeChange, 0, len(envs))
	for i, env := range envs {
		c, err := env.ToChange()
		if err != nil {
			return nil, fmt.Errorf("edge change %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// DecodeConnection decodes a connect event.
func (b *Bridge) DecodeConnection(data []byte) (coregraph.Connection, error) {
	var conn coregraph.Connection
	if err := b.pipeline.Decode(data, &conn); err != nil {
		return coregraph.Connection{}, err
	}
	if err := validation.ValidateConnection(conn); err != nil {
		return coregraph.Connection{}, err
	}
	return conn, nil
}

// EncodeFrame encodes a snapshot for painting.
func (b *Bridge) EncodeFrame(f Frame) ([]byte, error) {
	if f.Nodes == nil {
		f.Nodes = []*coregraph.Node{}
	}
	if f.Edges == nil {
		f.Edges = []*coregraph.Edge{}
	}
	return b.pipeline.Encode(f)
}

// DecodeFrame is the renderer side of EncodeFrame.
func (b *Bridge) DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	err := b.pipeline.Decode(data, &f)
	return f, err
}

// EncodeNodeChanges is the renderer side of DecodeNodeChanges.
func (b *Bridge) EncodeNodeChanges(changes []coregraph.NodeChange) ([]byte, error) {
	envs := make([]NodeChangeEnvelope, 0, len(changes))
	for _, c := range changes {
		envs = append(envs, NodeEnvelopeOf(c))
	}
	return b.pipeline.Encode(envs)
}

// EncodeEdgeChanges is the renderer side of DecodeEdgeChanges.
func (b *Bridge) EncodeEdgeChanges(changes []coregraph.EdgeChange) ([]byte, error) {
	envs := make([]EdgeChangeEnvelope, 0, len(changes))
	for _, c := range changes {
		envs = append(envs, EdgeEnvelopeOf(c))
	}
	return b.pipeline.Encode(envs)
}

// ToChange converts the envelope into its change descriptor variant.
func (env NodeChangeEnvelope) ToChange() (coregraph.NodeChange, error) {
	if err := validation.ValidateWithPlayground(env); err != nil {
		return nil, err
	}
	switch env.Type {
	case ChangePosition:
		return coregraph.NodePositionChange{ID: env.ID, Position: env.Position, Dragging: env.Dragging}, nil
	case ChangeSelect:
		return coregraph.NodeSelectChange{ID: env.ID, Selected: env.Selected}, nil
	case ChangeRemove:
		return coregraph.NodeRemoveChange{ID: env.ID}, nil
	default:
		return coregraph.NodeDimensionsChange{ID: env.ID, Width: env.Dimensions.Width, Height: env.Dimensions.Height}, nil
	}
}

// ToChange converts the envelope into its change descriptor variant.
func (env EdgeChangeEnvelope) ToChange() (coregraph.EdgeChange, error) {
	if err := validation.ValidateWithPlayground(env); err != nil {
		return nil, err
	}
	if env.Type == ChangeSelect {
		return coregraph.EdgeSelectChange{ID: env.ID, Selected: env.Selected}, nil
	}
	return coregraph.EdgeRemoveChange{ID: env.ID}, nil
}

// NodeEnvelopeOf converts a change descriptor into its wire form.
func NodeEnvelopeOf(c coregraph.NodeChange) NodeChangeEnvelope {
	switch v := c.(type) {
	case coregraph.NodePositionChange:
		return NodeChangeEnvelope{Type: ChangePosition, ID: v.ID, Position: v.Position, Dragging: v.Dragging}
	case coregraph.NodeSelectChange:
		return NodeChangeEnvelope{Type: ChangeSelect, ID: v.ID, Selected: v.Selected}
	case coregraph.NodeDimensionsChange:
		return NodeChangeEnvelope{Type: ChangeDimensions, ID: v.ID, Dimensions: &Dimensions{Width: v.Width, Height: v.Height}}
	default:
		return NodeChangeEnvelope{Type: ChangeRemove, ID: c.NodeID()}
	}
}

// EdgeEnvelopeOf converts an edge change descriptor into its wire form.
func EdgeEnvelopeOf(c coregraph.EdgeChange) EdgeChangeEnvelope {
	if v, ok := c.(coregraph.EdgeSelectChange); ok {
		return EdgeChangeEnvelope{Type: ChangeSelect, ID: v.ID, Selected: v.Selected}
	}
	return EdgeChangeEnvelope{Type: ChangeRemove, ID: c.EdgeID()}
}
