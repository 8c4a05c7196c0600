package dto

import "errors"

// Gesture abort reasons. Gestures never surface these to the user; they are
// logged and used as metric labels.
var (
	ErrMissingNodeType   = errors.New("drop payload carries no node type")
	ErrUnknownNodeType   = errors.New("drop payload names an unknown node type")
	ErrCanvasUnavailable = errors.New("canvas bounds unavailable")
	ErrInvalidAnchor     = errors.New("connection does not join a source anchor to a target anchor")
	ErrUnknownEndpoint   = errors.New("connection endpoint does not exist")
	ErrTargetGone        = errors.New("gesture target no longer exists")
	ErrNoDetailsPanel    = errors.New("node kind has no details panel")
	ErrInspectorClosed   = errors.New("edge inspector is not bound to an edge")
	ErrRejected          = errors.New("store rejected the gesture")
)

// Reason maps an abort error to its metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingNodeType):
		return "missing_type"
	case errors.Is(err, ErrUnknownNodeType):
		return "unknown_type"
	case errors.Is(err, ErrCanvasUnavailable):
		return "no_canvas"
	case errors.Is(err, ErrInvalidAnchor):
		return "invalid_anchor"
	case errors.Is(err, ErrUnknownEndpoint):
		return "unknown_endpoint"
	case errors.Is(err, ErrInspectorClosed):
		return "inactive"
	case errors.Is(err, ErrTargetGone):
		return "target_gone"
	case errors.Is(err, ErrNoDetailsPanel):
		return "no_details"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "cancelled"
	}
}
