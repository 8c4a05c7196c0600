// Package graph provides the flowchart domain entities and the pure
// transition functions that mutate them.
//
// Every transition treats its input collection as immutable. When something
// changes, the result is a new slice in which untouched entities keep their
// pointer and touched entities are fresh copies. When nothing changes the
// input slice itself is returned, so observers can detect change by identity.
package graph

import "fmt"

// ApplyNodeChanges folds changes over nodes in order. Changes naming an
// unknown id are ignored; for the same id the last change wins.
func ApplyNodeChanges(changes []NodeChange, nodes []*Node) []*Node {
	out, owned := nodes, false
	for _, c := range changes {
		if c == nil {
			continue
		}
		i := indexOfNode(out, c.NodeID())
		if i < 0 {
			continue
		}
		if !owned {
			out, owned = cloneSlice(out), true
		}
		next, keep := c.apply(out[i])
		if !keep {
			out = append(out[:i], out[i+1:]...)
			continue
		}
		out[i] = next
	}
	return out
}

// ApplyEdgeChanges folds changes over edges in order, like ApplyNodeChanges.
func ApplyEdgeChanges(changes []EdgeChange, edges []*Edge) []*Edge {
	out, owned := edges, false
	for _, c := range changes {
		if c == nil {
			continue
		}
		i := indexOfEdge(out, c.EdgeID())
		if i < 0 {
			continue
		}
		if !owned {
			out, owned = cloneSlice(out), true
		}
		next, keep := c.apply(out[i])
		if !keep {
			out = append(out[:i], out[i+1:]...)
			continue
		}
		out[i] = next
	}
	return out
}

// Connect appends a default-styled edge for conn under id. It does not
// check endpoint distinctness or whether the pair is already connected.
func Connect(conn Connection, edges []*Edge, id string) []*Edge {
	out := make([]*Edge, len(edges), len(edges)+1)
	copy(out, edges)
	return append(out, NewEdge(id, conn))
}

// AddNode appends a fully formed node. A node whose id is already present is
// rejected and nodes is returned unchanged.
func AddNode(node *Node, nodes []*Node) ([]*Node, error) {
	if node == nil {
		return nodes, ErrInvalidNode
	}
	if indexOfNode(nodes, node.ID) >= 0 {
		return nodes, fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
	}
	out := make([]*Node, len(nodes), len(nodes)+1)
	copy(out, nodes)
	return append(out, node.clone()), nil
}

// UpdateNodeLabel replaces the label of node id.
func UpdateNodeLabel(id, label string, nodes []*Node) []*Node {
	return updateNode(nodes, id, func(n *Node) { n.Label = label })
}

// UpdateEdgeStyle replaces the style of edge id.
func UpdateEdgeStyle(id string, style EdgeStyle, edges []*Edge) []*Edge {
	return updateEdge(edges, id, func(e *Edge) { e.Style = style })
}

// UpdateEdgeColor replaces the color of edge id.
func UpdateEdgeColor(id, color string, edges []*Edge) []*Edge {
	return updateEdge(edges, id, func(e *Edge) { e.Color = color })
}

// UpdateEdgeLabel replaces the label of edge id.
func UpdateEdgeLabel(id, label string, edges []*Edge) []*Edge {
	return updateEdge(edges, id, func(e *Edge) { e.Label = label })
}

// ToggleEdgeArrow flips the arrowhead at one end of edge id. An unknown end
// leaves edges untouched.
func ToggleEdgeArrow(id string, end ArrowEnd, edges []*Edge) []*Edge {
	switch end {
	case ArrowSource:
		return updateEdge(edges, id, func(e *Edge) { e.SourceArrow = !e.SourceArrow })
	case ArrowTarget:
		return updateEdge(edges, id, func(e *Edge) { e.TargetArrow = !e.TargetArrow })
	default:
		return edges
	}
}

// DanglingEdges returns the edges whose source or target is not in nodes.
func DanglingEdges(nodes []*Node, edges []*Edge) []*Edge {
	present := nodeIDSet(nodes)
	var out []*Edge
	for _, e := range edges {
		if !present[e.Source] || !present[e.Target] {
			out = append(out, e)
		}
	}
	return out
}

// RemoveEdgesTouching drops every edge whose source or target is in ids.
func RemoveEdgesTouching(ids []string, edges []*Edge) []*Edge {
	if len(ids) == 0 {
		return edges
	}
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	keep := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		if !gone[e.Source] && !gone[e.Target] {
			keep = append(keep, e)
		}
	}
	if len(keep) == len(edges) {
		return edges
	}
	return keep
}

// RemovedNodeIDs lists the ids present in before and absent from after.
func RemovedNodeIDs(before, after []*Node) []string {
	present := nodeIDSet(after)
	var out []string
	for _, n := range before {
		if !present[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// SameCollection reports whether a and b are the same collection instance,
// which is how callers detect that a transition was a no-op.
func SameCollection[T any](a, b []*T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// FindNode returns the node with id, or nil.
func FindNode(nodes []*Node, id string) *Node {
	if i := indexOfNode(nodes, id); i >= 0 {
		return nodes[i]
	}
	return nil
}

// FindEdge returns the edge with id, or nil.
func FindEdge(edges []*Edge, id string) *Edge {
	if i := indexOfEdge(edges, id); i >= 0 {
		return edges[i]
	}
	return nil
}

func updateNode(nodes []*Node, id string, mutate func(*Node)) []*Node {
	i := indexOfNode(nodes, id)
	if i < 0 {
		return nodes
	}
	n := nodes[i].clone()
	mutate(n)
	return replaceAt(nodes, i, n)
}

func updateEdge(edges []*Edge, id string, mutate func(*Edge)) []*Edge {
	i := indexOfEdge(edges, id)
	if i < 0 {
		return edges
	}
	e := edges[i].clone()
	mutate(e)
	return replaceAt(edges, i, e)
}

func indexOfNode(nodes []*Node, id string) int {
	for i, n := range nodes {
		if n != nil && n.ID == id {
			return i
		}
	}
	return -1
}

func indexOfEdge(edges []*Edge, id string) int {
	for i, e := range edges {
		if e != nil && e.ID == id {
			return i
		}
	}
	return -1
}

func nodeIDSet(nodes []*Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}

func cloneSlice[T any](s []*T) []*T {
	out := make([]*T, len(s))
	copy(out, s)
	return out
}

func replaceAt[T any](s []*T, i int, v *T) []*T {
	out := cloneSlice(s)
	out[i] = v
	return out
}
