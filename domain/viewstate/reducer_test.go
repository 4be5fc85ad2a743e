package viewstate

import (
	"testing"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chainGraph builds COMP-202 -> COMP-250 -> COMP-360 plus an unrelated
// MATH-240 node.
func chainGraph() *graph.Graph {
	cat := catalog.New([]*catalog.CourseRecord{
		{Code: "COMP-360", Prerequisites: catalog.RequirementList{catalog.CourseRef{Code: "COMP-250"}}},
		{Code: "COMP-250", Prerequisites: catalog.RequirementList{catalog.CourseRef{Code: "COMP-202"}}},
		{Code: "COMP-202"},
		{Code: "MATH-240"},
	}, nil)
	return graph.NewBuilder(cat, zap.NewNop()).Build([]string{"COMP-360", "COMP-250", "COMP-202", "MATH-240"})
}

func TestReduce_NodeClickedAccumulates(t *testing.T) {
	g := chainGraph()
	state := NewState()

	state = Reduce(state, g, NodeClicked{NodeID: "COMP-250"})
	state = Reduce(state, g, NodeClicked{NodeID: "MATH-240"})

	assert.True(t, state.IsSelected("COMP-250"))
	assert.True(t, state.IsSelected("MATH-240"))
	assert.Len(t, state.Selected, 2)
}

func TestReduce_UnknownNodeClickIsNoOp(t *testing.T) {
	g := chainGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "COMP-250"})

	next := Reduce(state, g, NodeClicked{NodeID: "nope"})

	assert.Equal(t, state, next)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	g := chainGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "COMP-250"})

	_ = Reduce(state, g, NodeClicked{NodeID: "COMP-202"})

	assert.Len(t, state.Selected, 1)
}

func TestReduce_BackgroundClickClearsSelection(t *testing.T) {
	g := chainGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "COMP-250"})
	state = Reduce(state, g, FilterChanged{Filter: "COMP"})
	state = Reduce(state, g, NodeClicked{NodeID: "COMP-202"})

	state = Reduce(state, g, BackgroundClicked{})

	assert.False(t, state.HasSelection())
	// The filter survives a background click.
	assert.Equal(t, catalog.Category("COMP"), state.Filter)
}

func TestReduce_FilterChangeClearsSelection(t *testing.T) {
	g := chainGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "COMP-250"})

	state = Reduce(state, g, FilterChanged{Filter: "MATH"})

	assert.False(t, state.HasSelection())
	assert.Equal(t, catalog.Category("MATH"), state.Filter)
}

func TestReduce_EmptyFilterMeansAll(t *testing.T) {
	g := chainGraph()

	state := Reduce(NewState(), g, FilterChanged{Filter: ""})

	assert.Equal(t, catalog.CategoryAll, state.Filter)
}

func TestReduce_ProgramChangeClearsSelectionKeepsFilter(t *testing.T) {
	g := chainGraph()
	state := Reduce(NewState(), g, FilterChanged{Filter: "COMP"})
	state = Reduce(state, g, NodeClicked{NodeID: "COMP-250"})
	require.True(t, state.HasSelection())

	state = Reduce(state, g, ProgramChanged{})

	assert.False(t, state.HasSelection())
	assert.Equal(t, catalog.Category("COMP"), state.Filter)
}
