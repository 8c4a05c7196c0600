// Package graph provides node definitions
package graph

import (
	"fmt"
	"strings"
)

// NodeKind represents the kind of a flowchart node
type NodeKind string

const (
	// NodeKindStart marks the entry of a flow
	NodeKindStart NodeKind = "start"
	// NodeKindProcess represents a single step of work
	NodeKindProcess NodeKind = "process"
	// NodeKindDecision represents a branching point with true/false outlets
	NodeKindDecision NodeKind = "decision"
	// NodeKindEnd marks a terminal of a flow
	NodeKindEnd NodeKind = "end"
)

// NodeKinds lists every kind in palette order.
var NodeKinds = []NodeKind{NodeKindStart, NodeKindProcess, NodeKindDecision, NodeKindEnd}

// ParseNodeKind converts a palette type token into a NodeKind.
func ParseNodeKind(token string) (NodeKind, bool) {
	for _, k := range NodeKinds {
		if string(k) == token {
			return k, true
		}
	}
	return "", false
}

// DefaultLabel returns the label a freshly dropped node carries: the kind
// with its first letter upper-cased.
func (k NodeKind) DefaultLabel() string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Position is a coordinate in canvas space
type Position struct {
	X float64 `json:"x" msgpack:"x" yaml:"x"`
	Y float64 `json:"y" msgpack:"y" yaml:"y"`
}

// Node represents a vertex of the diagram
// PRINCIPLES:
// - KISS: Plain value, copied on every mutation
// - SRP: Only responsible for node data
type Node struct {
	ID       string   `json:"id" msgpack:"id" validate:"required,max=128"`
	Kind     NodeKind `json:"type" msgpack:"type" validate:"required,node_kind"`
	Position Position `json:"position" msgpack:"position"`
	Label    string   `json:"label" msgpack:"label" validate:"max=512"`

	// Renderer-owned flags, mutated only through change descriptors.
	Selected bool     `json:"selected,omitempty" msgpack:"selected,omitempty"`
	Dragging bool     `json:"dragging,omitempty" msgpack:"dragging,omitempty"`
	Width    *float64 `json:"width,omitempty" msgpack:"width,omitempty"`
	Height   *float64 `json:"height,omitempty" msgpack:"height,omitempty"`

	Details Details `json:"details" msgpack:"details"`
}

// NewNode builds a node with the kind's default label.
func NewNode(id string, kind NodeKind, pos Position) *Node {
	return &Node{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Label:    kind.DefaultLabel(),
	}
}

// clone returns a shallow copy; slices inside Details are shared until a
// detail transition replaces them.
func (n *Node) clone() *Node {
	c := *n
	return &c
}

// Clone returns a deep copy that shares nothing with n.
func (n *Node) Clone() *Node {
	c := *n
	if n.Width != nil {
		w := *n.Width
		c.Width = &w
	}
	if n.Height != nil {
		h := *n.Height
		c.Height = &h
	}
	c.Details = n.Details.clone()
	return &c
}

// Validate checks the detail rules struct tags cannot express: assignees
// are trimmed, non-empty and unique, and no app is selected twice.
func (n *Node) Validate() error {
	seen := make(map[string]struct{}, len(n.Details.Assignees))
	for _, name := range n.Details.Assignees {
		if name == "" || strings.TrimSpace(name) != name {
			return fmt.Errorf("%w: assignee %q", ErrInvalidNodeDetails, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: assignee %q listed twice", ErrInvalidNodeDetails, name)
		}
		seen[name] = struct{}{}
	}
	apps := make(map[string]struct{}, len(n.Details.Apps))
	for _, app := range n.Details.Apps {
		if _, dup := apps[app]; dup {
			return fmt.Errorf("%w: app %q selected twice", ErrInvalidNodeDetails, app)
		}
		apps[app] = struct{}{}
	}
	return nil
}
