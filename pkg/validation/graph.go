package validation

import (
	"fmt"

	coregraph "github.com/Tbit256/Process-Flowchart/internal/core/graph"
)

// DiagramValidationOptions controls optional validation checks.
type DiagramValidationOptions struct {
	// CheckEndpoints rejects edges whose source or target node is missing.
	// Off by default: dangling edges are tolerated by the store.
	CheckEndpoints bool
}

// ValidateNode validates a single node against its struct tags.
func ValidateNode(n *coregraph.Node) error {
	if n == nil {
		return fmt.Errorf("%w: node is nil", coregraph.ErrInvalidNode)
	}
	if err := ValidateWithPlayground(n); err != nil {
		return fmt.Errorf("%w: %w", coregraph.ErrInvalidNode, err)
	}
	return nil
}

// ValidateEdge validates a single edge against its struct tags.
func ValidateEdge(e *coregraph.Edge) error {
	if e == nil {
		return fmt.Errorf("edge is nil")
	}
	return ValidateWithPlayground(e)
}

// ValidateConnection validates a candidate edge reported by the renderer.
func ValidateConnection(c coregraph.Connection) error {
	if err := ValidateWithPlayground(c); err != nil {
		return fmt.Errorf("%w: %w", coregraph.ErrInvalidConnection, err)
	}
	return nil
}

// ValidateDiagram performs structural validation on a whole diagram.
// It is intended for diagrams handed over from outside the store (seeds,
// replay scripts) where the AddNode/Connect guards were bypassed.
func ValidateDiagram(nodes []*coregraph.Node, edges []*coregraph.Edge, opts ...DiagramValidationOptions) error {
	var cfg DiagramValidationOptions
	if len(opts) > 0 {
		cfg = opts[0]
	}

	seenNodes := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if err := ValidateNode(n); err != nil {
			return err
		}
		if _, dup := seenNodes[n.ID]; dup {
			return fmt.Errorf("%w: %s", coregraph.ErrDuplicateNode, n.ID)
		}
		seenNodes[n.ID] = struct{}{}
	}

	seenEdges := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		if err := ValidateEdge(e); err != nil {
			return err
		}
		if _, dup := seenEdges[e.ID]; dup {
			return fmt.Errorf("duplicate edge ID: %s", e.ID)
		}
		seenEdges[e.ID] = struct{}{}

		if !cfg.CheckEndpoints {
			continue
		}
		if _, ok := seenNodes[e.Source]; !ok {
			return fmt.Errorf("%w: edge %s references %s", coregraph.ErrSourceNodeNotFound, e.ID, e.Source)
		}
		if _, ok := seenNodes[e.Target]; !ok {
			return fmt.Errorf("%w: edge %s references %s", coregraph.ErrTargetNodeNotFound, e.ID, e.Target)
		}
	}

	return nil
}
