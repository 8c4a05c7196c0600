package usecases

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/metrics"
)

// Gesture names used in logs and metric labels.
const (
	GesturePaletteDrop = "palette_drop"
	GestureConnect     = "connect"
	GestureLabelEdit   = "label_edit"
	GestureInspector   = "edge_inspector"
	GestureDetails     = "node_details"
)

// errCancelled marks a gesture the user abandoned.
var errCancelled = errors.New("gesture cancelled")

func aborted(logger *zap.Logger, gesture string, err error, fields ...zap.Field) {
	metrics.GestureAborted(gesture, dto.Reason(err))
	logger.Debug("gesture aborted", append([]zap.Field{zap.String("gesture", gesture), zap.Error(err)}, fields...)...)
}

func committed(logger *zap.Logger, gesture string, fields ...zap.Field) {
	metrics.GestureCommitted(gesture)
	logger.Debug("gesture committed", append([]zap.Field{zap.String("gesture", gesture)}, fields...)...)
}
