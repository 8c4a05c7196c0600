package usecases

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Tbit256/Process-Flowchart/internal/app/dto"
	"github.com/Tbit256/Process-Flowchart/internal/core/graph"
	"github.com/Tbit256/Process-Flowchart/internal/infrastructure/logging"
)

// DetailsMenu drives the assignee, automation and application controls of
// one process or decision node.
type DetailsMenu struct {
	store  GraphStore
	nodeID string
	logger *zap.Logger
}

// NewDetailsMenu binds a menu to node id
func NewDetailsMenu(store GraphStore, nodeID string, logger *zap.Logger) *DetailsMenu {
	return &DetailsMenu{store: store, nodeID: nodeID, logger: logging.OrNop(logger)}
}

// Details returns the node's current details.
func (m *DetailsMenu) Details() (graph.Details, bool) {
	n, err := m.node()
	if err != nil {
		return graph.Details{}, false
	}
	return n.Details, true
}

// SearchApps filters the node's application catalog.
func (m *DetailsMenu) SearchApps(term string) []string {
	n, err := m.node()
	if err != nil {
		return nil
	}
	return graph.SearchApps(n, term)
}

// AddAssignee adds a person to the node.
func (m *DetailsMenu) AddAssignee(name string) bool {
	return m.apply("add_assignee", func() bool { return m.store.AddAssignee(m.nodeID, name) })
}

// RemoveAssignee removes a person from the node.
func (m *DetailsMenu) RemoveAssignee(name string) bool {
	return m.apply("remove_assignee", func() bool { return m.store.RemoveAssignee(m.nodeID, name) })
}

// CycleAutomation advances the automation indicator.
func (m *DetailsMenu) CycleAutomation() bool {
	return m.apply("cycle_automation", func() bool { return m.store.CycleAutomation(m.nodeID) })
}

// ToggleApp selects or deselects an application.
func (m *DetailsMenu) ToggleApp(app string) bool {
	return m.apply("toggle_app", func() bool { return m.store.ToggleApp(m.nodeID, app) })
}

// AddCustomApp adds an application missing from the catalog and selects it.
func (m *DetailsMenu) AddCustomApp(app string) bool {
	return m.apply("add_custom_app", func() bool { return m.store.AddCustomApp(m.nodeID, app) })
}

func (m *DetailsMenu) node() (*graph.Node, error) {
	n := m.store.Snapshot().Node(m.nodeID)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", dto.ErrTargetGone, m.nodeID)
	}
	if !n.Kind.HasDetails() {
		return nil, fmt.Errorf("%w: %s", dto.ErrNoDetailsPanel, n.Kind)
	}
	return n, nil
}

// apply runs op when the node has a details panel. An op that changes
// nothing (an empty or repeated name) is not an abort.
func (m *DetailsMenu) apply(action string, op func() bool) bool {
	if _, err := m.node(); err != nil {
		aborted(m.logger, GestureDetails, err, zap.String("action", action))
		return false
	}
	if !op() {
		m.logger.Debug("details unchanged", zap.String("nodeID", m.nodeID), zap.String("action", action))
		return false
	}
	committed(m.logger, GestureDetails, zap.String("nodeID", m.nodeID), zap.String("action", action))
	return true
}
