package usecases

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
)

// Keys the label editor reacts to.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// LabelEditor is the in-place editor of one node or edge label. A commit
// leaves edit mode before writing, so Enter followed by Blur writes once.
type LabelEditor struct {
	store  GraphStore
	target dto.LabelTarget
	id     string
	logger *zap.Logger

	editing bool
	buffer  string
}

// NewNodeLabelEditor binds an editor to the label of node id
func NewNodeLabelEditor(store GraphStore, id string, logger *zap.Logger) *LabelEditor {
	return &LabelEditor{store: store, target: dto.LabelTargetNode, id: id, logger: logging.OrNop(logger)}
}

// NewEdgeLabelEditor binds an editor to the label of edge id
func NewEdgeLabelEditor(store GraphStore, id string, logger *zap.Logger) *LabelEditor {
	return &LabelEditor{store: store, target: dto.LabelTargetEdge, id: id, logger: logging.OrNop(logger)}
}

// Label returns the label currently stored for the target.
func (e *LabelEditor) Label() (string, bool) {
	snap := e.store.Snapshot()
	switch e.target {
	case dto.LabelTargetNode:
		if n := snap.Node(e.id); n != nil {
			return n.Label, true
		}
	case dto.LabelTargetEdge:
		if ed := snap.Edge(e.id); ed != nil {
			return ed.Label, true
		}
	}
	return "", false
}

// Activate enters edit mode with the buffer set to the stored label. It is
// what a double click does; activating while editing keeps the buffer.
func (e *LabelEditor) Activate() bool {
	if e.editing {
		return true
	}
	label, ok := e.Label()
	if !ok {
		aborted(e.logger, GestureLabelEdit, dto.ErrTargetGone, zap.String("id", e.id))
		return false
	}
	e.editing = true
	e.buffer = label
	return true
}

// Editing reports whether the editor is in edit mode.
func (e *LabelEditor) Editing() bool { return e.editing }

// Buffer returns the text typed so far.
func (e *LabelEditor) Buffer() string { return e.buffer }

// Input replaces the buffer. It is ignored outside edit mode.
func (e *LabelEditor) Input(text string) {
	if e.editing {
		e.buffer = text
	}
}

// KeyDown commits on Enter and discards the buffer on Escape. Other keys
// are left to the text field.
func (e *LabelEditor) KeyDown(key string) bool {
	switch key {
	case KeyEnter:
		return e.commit()
	case KeyEscape:
		if e.editing {
			e.editing = false
			aborted(e.logger, GestureLabelEdit, errCancelled, zap.String("id", e.id))
		}
	}
	return false
}

// Blur commits the buffer when focus leaves the field.
func (e *LabelEditor) Blur() bool { return e.commit() }

func (e *LabelEditor) commit() bool {
	if !e.editing {
		return false
	}
	e.editing = false

	var (
		ok  bool
		err error
	)
	switch e.target {
	case dto.LabelTargetNode:
		ok, err = e.store.UpdateNodeLabel(e.id, e.buffer)
	case dto.LabelTargetEdge:
		ok, err = e.store.UpdateEdgeLabel(e.id, e.buffer)
	}
	if err != nil {
		aborted(e.logger, GestureLabelEdit, fmt.Errorf("%w: %w", dto.ErrRejected, err), zap.String("id", e.id))
		return false
	}
	if !ok {
		aborted(e.logger, GestureLabelEdit, dto.ErrTargetGone, zap.String("id", e.id))
		return false
	}
	committed(e.logger, GestureLabelEdit, zap.String("target", string(e.target)), zap.String("id", e.id))
	return true
}
