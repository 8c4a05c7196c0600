package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomationStatus_Next(t *testing.T) {
	assert.Equal(t, AutomationPartial, AutomationStatus("").Next())
	assert.Equal(t, AutomationPartial, AutomationNone.Next())
	assert.Equal(t, AutomationFull, AutomationPartial.Next())
	assert.Equal(t, AutomationNone, AutomationFull.Next())
}

func TestAssignees(t *testing.T) {
	nodes := fixtureNodes()

	out := AddAssignee("node_2", "  Bob ", nodes)
	out = AddAssignee("node_2", "Sue", out)
	require.Equal(t, []string{"Bob", "Sue"}, out[1].Details.Assignees)
	assert.Empty(t, nodes[1].Details.Assignees)

	assert.True(t, sameBacking(out, AddAssignee("node_2", "Bob", out)), "duplicate ignored")
	assert.True(t, sameBacking(out, AddAssignee("node_2", "   ", out)), "blank ignored")
	assert.True(t, sameBacking(out, AddAssignee("ghost", "Ann", out)))

	removed := RemoveAssignee("node_2", "Bob", out)
	assert.Equal(t, []string{"Sue"}, removed[1].Details.Assignees)
	assert.Equal(t, []string{"Bob", "Sue"}, out[1].Details.Assignees)
	assert.True(t, sameBacking(removed, RemoveAssignee("node_2", "Bob", removed)))
}

func TestCycleAutomation(t *testing.T) {
	out := fixtureNodes()
	var seen []AutomationStatus
	for i := 0; i < 4; i++ {
		out = CycleAutomation("node_2", out)
		seen = append(seen, out[1].Details.Automation)
	}
	assert.Equal(t, []AutomationStatus{AutomationPartial, AutomationFull, AutomationNone, AutomationPartial}, seen)
}

func TestApps(t *testing.T) {
	nodes := fixtureNodes()

	out := ToggleApp("node_2", "Jira", nodes)
	assert.Equal(t, []string{"Jira"}, out[1].Details.Apps)
	out = ToggleApp("node_2", "Jira", out)
	assert.Empty(t, out[1].Details.Apps)

	out = AddCustomApp("node_2", " Linear ", out)
	assert.Equal(t, []string{"Linear"}, out[1].Details.Apps)
	assert.Contains(t, out[1].Details.Catalog(), "Linear")
	assert.Len(t, out[1].Details.Catalog(), len(DefaultAppCatalog)+1)
	assert.Len(t, DefaultAppCatalog, 8, "default catalog must stay untouched")
	assert.NotContains(t, nodes[1].Details.Catalog(), "Linear")

	assert.False(t, sameBacking(out, AddCustomApp("node_2", "slack", out)), "catalog match is case-sensitive")
	assert.True(t, sameBacking(out, AddCustomApp("node_2", "Slack", out)))
	assert.True(t, sameBacking(out, AddCustomApp("node_2", "", out)))
}

func TestSearchApps(t *testing.T) {
	n := NewNode("n", NodeKindProcess, Position{})
	assert.Equal(t, []string{"GitHub", "Gmail"}, SearchApps(n, "g"))
	assert.Equal(t, []string{"Slack"}, SearchApps(n, "SLA"))
	assert.Empty(t, SearchApps(n, "zzz"))
	assert.Len(t, SearchApps(n, ""), len(DefaultAppCatalog))
}

func TestNodeKind_HasDetails(t *testing.T) {
	assert.True(t, NodeKindProcess.HasDetails())
	assert.True(t, NodeKindDecision.HasDetails())
	assert.False(t, NodeKindStart.HasDetails())
	assert.False(t, NodeKindEnd.HasDetails())
}
