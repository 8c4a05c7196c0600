package graph

import (
	"slices"
	"strings"
)

// AutomationStatus tells how much of a step is automated
type AutomationStatus string

const (
	AutomationNone    AutomationStatus = "none"
	AutomationPartial AutomationStatus = "partial"
	AutomationFull    AutomationStatus = "full"
)

// Next returns the status following s in the none, partial, full cycle.
// The zero value counts as none.
func (s AutomationStatus) Next() AutomationStatus {
	switch s {
	case AutomationNone, "":
		return AutomationPartial
	case AutomationPartial:
		return AutomationFull
	default:
		return AutomationNone
	}
}

// HasDetails reports whether nodes of kind show the work-assignment panel.
func (k NodeKind) HasDetails() bool {
	return k == NodeKindProcess || k == NodeKindDecision
}

// DefaultAppCatalog is offered to every node until it adds a custom app.
var DefaultAppCatalog = []string{"Slack", "Jira", "GitHub", "Gmail", "Salesforce", "Notion", "Trello", "Asana"}

// Details is the work-assignment panel of a node
type Details struct {
	Assignees  []string         `json:"assignees,omitempty" msgpack:"assignees,omitempty"`
	Automation AutomationStatus `json:"automation,omitempty" msgpack:"automation,omitempty"`
	Apps       []string         `json:"apps,omitempty" msgpack:"apps,omitempty"`
	// AppCatalog is nil while the node still uses DefaultAppCatalog.
	AppCatalog []string `json:"appCatalog,omitempty" msgpack:"appCatalog,omitempty"`
}

// Catalog returns the apps the node can choose from.
func (d Details) Catalog() []string {
	if d.AppCatalog == nil {
		return DefaultAppCatalog
	}
	return d.AppCatalog
}

func (d Details) clone() Details {
	d.Assignees = slices.Clone(d.Assignees)
	d.Apps = slices.Clone(d.Apps)
	d.AppCatalog = slices.Clone(d.AppCatalog)
	return d
}

// SearchApps filters the node's catalog by a case-insensitive substring.
func SearchApps(n *Node, term string) []string {
	term = strings.ToLower(term)
	var out []string
	for _, app := range n.Details.Catalog() {
		if strings.Contains(strings.ToLower(app), term) {
			out = append(out, app)
		}
	}
	return out
}

// AddAssignee appends a trimmed person name. Empty and duplicate names are
// ignored.
func AddAssignee(id, name string, nodes []*Node) []*Node {
	name = strings.TrimSpace(name)
	n := FindNode(nodes, id)
	if name == "" || n == nil || slices.Contains(n.Details.Assignees, name) {
		return nodes
	}
	return updateNode(nodes, id, func(n *Node) {
		n.Details.Assignees = appendCopy(n.Details.Assignees, name)
	})
}

// RemoveAssignee drops a person from the node.
func RemoveAssignee(id, name string, nodes []*Node) []*Node {
	n := FindNode(nodes, id)
	if n == nil || !slices.Contains(n.Details.Assignees, name) {
		return nodes
	}
	return updateNode(nodes, id, func(n *Node) {
		n.Details.Assignees = without(n.Details.Assignees, name)
	})
}

// CycleAutomation advances the automation status of the node.
func CycleAutomation(id string, nodes []*Node) []*Node {
	return updateNode(nodes, id, func(n *Node) {
		n.Details.Automation = n.Details.Automation.Next()
	})
}

// ToggleApp selects app when it is not selected and deselects it otherwise.
func ToggleApp(id, app string, nodes []*Node) []*Node {
	return updateNode(nodes, id, func(n *Node) {
		if slices.Contains(n.Details.Apps, app) {
			n.Details.Apps = without(n.Details.Apps, app)
			return
		}
		n.Details.Apps = appendCopy(n.Details.Apps, app)
	})
}

// AddCustomApp adds a trimmed app name to the node's catalog and selects it.
// Empty names and names already in the catalog are ignored.
func AddCustomApp(id, app string, nodes []*Node) []*Node {
	app = strings.TrimSpace(app)
	n := FindNode(nodes, id)
	if app == "" || n == nil || slices.Contains(n.Details.Catalog(), app) {
		return nodes
	}
	return updateNode(nodes, id, func(n *Node) {
		n.Details.AppCatalog = appendCopy(n.Details.Catalog(), app)
		n.Details.Apps = appendCopy(n.Details.Apps, app)
	})
}

func appendCopy(s []string, v string) []string {
	out := make([]string, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

func without(s []string, v string) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
