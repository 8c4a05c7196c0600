// Package graph defines domain-specific errors
package graph

import "errors"

// Domain errors - DRY principle: defined once, used everywhere.
// Lookups of absent ids are not errors; they are silent no-ops.
var (
	// Node errors
	ErrInvalidNode        = errors.New("invalid node")
	ErrInvalidNodeDetails = errors.New("invalid node details")
	ErrDuplicateNode      = errors.New("duplicate node ID")
	ErrLabelTooLong       = errors.New("label too long")

	// Edge errors
	ErrInvalidConnection  = errors.New("invalid connection")
	ErrSourceNodeNotFound = errors.New("source node not found")
	ErrTargetNodeNotFound = errors.New("target node not found")
	ErrInvalidEdgeStyle   = errors.New("invalid edge style")
	ErrInvalidEdgeColor   = errors.New("invalid edge color")
	ErrInvalidArrowEnd    = errors.New("invalid arrow end")
)
