package usecases

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
)

// ConnectionDrag tracks a drag from one anchor to another
type ConnectionDrag struct {
	store  GraphStore
	logger *zap.Logger

	origin *dto.ConnectStart
}

// NewConnectionDrag creates the connect gesture handler
func NewConnectionDrag(store GraphStore, logger *zap.Logger) *ConnectionDrag {
	return &ConnectionDrag{store: store, logger: logging.OrNop(logger)}
}

// Start records the anchor the drag left from.
func (c *ConnectionDrag) Start(origin dto.ConnectStart) {
	c.origin = &origin
}

// Active reports whether a drag is in progress.
func (c *ConnectionDrag) Active() bool { return c.origin != nil }

// Complete connects the two anchors the drag joined. The source handle must
// be a source anchor of the source node's kind and the target handle a
// target anchor of the target node's kind. Complete works without a prior
// Start since some renderers only report the finished connection. The
// returned edge is a copy.
func (c *ConnectionDrag) Complete(conn graph.Connection) (*graph.Edge, bool) {
	c.origin = nil

	snap := c.store.Snapshot()
	if err := checkAnchors(snap.Node(conn.Source), snap.Node(conn.Target), conn); err != nil {
		aborted(c.logger, GestureConnect, err, zap.String("source", conn.Source), zap.String("target", conn.Target))
		return nil, false
	}

	edge, err := c.store.Connect(conn)
	if err != nil {
		aborted(c.logger, GestureConnect, fmt.Errorf("%w: %w", dto.ErrRejected, err))
		return nil, false
	}
	committed(c.logger, GestureConnect, zap.String("edgeID", edge.ID), zap.Bool("selfLoop", edge.IsSelfLoop()))
	return edge, true
}

// Cancel ends the drag without connecting anything.
func (c *ConnectionDrag) Cancel() {
	if c.origin == nil {
		return
	}
	origin := c.origin
	c.origin = nil
	aborted(c.logger, GestureConnect, errCancelled, zap.String("origin", origin.NodeID))
}

func checkAnchors(source, target *graph.Node, conn graph.Connection) error {
	if source == nil {
		return fmt.Errorf("%w: %s", dto.ErrUnknownEndpoint, conn.Source)
	}
	if target == nil {
		return fmt.Errorf("%w: %s", dto.ErrUnknownEndpoint, conn.Target)
	}
	if !graph.HandlesFor(source.Kind).Has(graph.HandleSource, conn.SourceHandle) {
		return fmt.Errorf("%w: %s has no source anchor %q", dto.ErrInvalidAnchor, source.ID, conn.SourceHandle)
	}
	if !graph.HandlesFor(target.Kind).Has(graph.HandleTarget, conn.TargetHandle) {
		return fmt.Errorf("%w: %s has no target anchor %q", dto.ErrInvalidAnchor, target.ID, conn.TargetHandle)
	}
	return nil
}
