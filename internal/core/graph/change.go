package graph

// NodeChange is one pending mutation of a single node, as reported by the
// rendering collaborator. The concrete types below are the only variants.
type NodeChange interface {
	NodeID() string
	apply(n *Node) (*Node, bool)
}

// NodePositionChange moves a node. A nil Position only updates Dragging.
type NodePositionChange struct {
	ID       string
	Position *Position
	Dragging bool
}

// NodeSelectChange toggles the selection flag of a node.
type NodeSelectChange struct {
	ID       string
	Selected bool
}

// NodeRemoveChange deletes a node.
type NodeRemoveChange struct {
	ID string
}

// NodeDimensionsChange records the size the renderer measured.
type NodeDimensionsChange struct {
	ID     string
	Width  float64
	Height float64
}

func (c NodePositionChange) NodeID() string   { return c.ID }
func (c NodeSelectChange) NodeID() string     { return c.ID }
func (c NodeRemoveChange) NodeID() string     { return c.ID }
func (c NodeDimensionsChange) NodeID() string { return c.ID }

func (c NodePositionChange) apply(n *Node) (*Node, bool) {
	out := n.clone()
	if c.Position != nil {
		out.Position = *c.Position
	}
	out.Dragging = c.Dragging
	return out, true
}

func (c NodeSelectChange) apply(n *Node) (*Node, bool) {
	out := n.clone()
	out.Selected = c.Selected
	return out, true
}

func (c NodeRemoveChange) apply(*Node) (*Node, bool) {
	return nil, false
}

func (c NodeDimensionsChange) apply(n *Node) (*Node, bool) {
	out := n.clone()
	w, h := c.Width, c.Height
	out.Width, out.Height = &w, &h
	return out, true
}

// EdgeChange is one pending mutation of a single edge.
type EdgeChange interface {
	EdgeID() string
	apply(e *Edge) (*Edge, bool)
}

// EdgeSelectChange toggles the selection flag of an edge.
type EdgeSelectChange struct {
	ID       string
	Selected bool
}

// EdgeRemoveChange deletes an edge.
type EdgeRemoveChange struct {
	ID string
}

func (c EdgeSelectChange) EdgeID() string { return c.ID }
func (c EdgeRemoveChange) EdgeID() string { return c.ID }

func (c EdgeSelectChange) apply(e *Edge) (*Edge, bool) {
	out := e.clone()
	out.Selected = c.Selected
	return out, true
}

func (c EdgeRemoveChange) apply(*Edge) (*Edge, bool) {
	return nil, false
}
