package viewstate

import (
	"testing"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// renderGraph: COMP-202 -> COMP-250 -> COMP-360, MATH-240 isolated, and an
// AND junction feeding ECSE-200 from COMP-202 and MATH-240.
func renderGraph() *graph.Graph {
	cat := catalog.New([]*catalog.CourseRecord{
		{Code: "COMP-360", Prerequisites: catalog.RequirementList{catalog.CourseRef{Code: "COMP-250"}}},
		{Code: "COMP-250", Prerequisites: catalog.RequirementList{catalog.CourseRef{Code: "COMP-202"}}},
		{Code: "COMP-202"},
		{Code: "MATH-240"},
		{Code: "ECSE-200", Prerequisites: catalog.RequirementList{
			catalog.LogicalGroup{Operator: catalog.OperatorAnd, Conditions: []catalog.Requirement{
				catalog.CourseRef{Code: "COMP-202"},
				catalog.CourseRef{Code: "MATH-240"},
			}},
		}},
	}, nil)
	return graph.NewBuilder(cat, zap.NewNop()).Build(
		[]string{"COMP-360", "COMP-250", "COMP-202", "MATH-240", "ECSE-200"})
}

func TestRender_NoSelectionAllFullOpacity(t *testing.T) {
	g := renderGraph()

	frame := Render(g, NewState())

	require.Len(t, frame.Nodes, len(g.Nodes))
	for id, attrs := range frame.Nodes {
		assert.Equal(t, 1.0, attrs.Opacity, "node %s", id)
		assert.Equal(t, "#343434", attrs.FontColor, "node %s", id)
		assert.Equal(t, 1, attrs.BorderWidth, "node %s", id)
	}
}

func TestRender_SelectionHighlightsNeighborhood(t *testing.T) {
	g := renderGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "COMP-250"})

	frame := Render(g, state)

	// Selected node: full opacity, thick border.
	sel := frame.Nodes["COMP-250"]
	assert.Equal(t, 1.0, sel.Opacity)
	assert.Equal(t, 2, sel.BorderWidth)

	// Direct neighbors along either edge direction stay fully visible.
	assert.Equal(t, 1.0, frame.Nodes["COMP-202"].Opacity)
	assert.Equal(t, 1.0, frame.Nodes["COMP-360"].Opacity)
	assert.Equal(t, 1, frame.Nodes["COMP-202"].BorderWidth)

	// Non-adjacent nodes dim.
	assert.Equal(t, 0.15, frame.Nodes["MATH-240"].Opacity)
	assert.Equal(t, "#c8c8c8", frame.Nodes["MATH-240"].FontColor)
}

func TestRender_MultiSelectUnionsHighlights(t *testing.T) {
	g := renderGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "COMP-360"})
	state = Reduce(state, g, NodeClicked{NodeID: "MATH-240"})

	frame := Render(g, state)

	// Both selections and both neighborhoods render fully.
	assert.Equal(t, 1.0, frame.Nodes["COMP-360"].Opacity)
	assert.Equal(t, 1.0, frame.Nodes["COMP-250"].Opacity)
	assert.Equal(t, 1.0, frame.Nodes["MATH-240"].Opacity)

	// COMP-202 is adjacent to neither selection (only to COMP-250 and the
	// junction), so it dims.
	assert.Equal(t, 0.15, frame.Nodes["COMP-202"].Opacity)
}

func TestRender_CategoryFilterOverridesSelection(t *testing.T) {
	g := renderGraph()
	state := Reduce(NewState(), g, NodeClicked{NodeID: "MATH-240"})
	state.Filter = "COMP" // selection kept to prove the override

	frame := Render(g, state)

	// Out-of-category nodes hide even when selected or adjacent.
	assert.Equal(t, 0.05, frame.Nodes["MATH-240"].Opacity)
	assert.Equal(t, 0, frame.Nodes["MATH-240"].BorderWidth)
	assert.Equal(t, 0.05, frame.Nodes["ECSE-200"].Opacity)
}

func TestRender_JunctionsDimUnderSpecificFilter(t *testing.T) {
	g := renderGraph()
	state := NewState()
	state.Filter = "COMP"

	frame := Render(g, state)

	var junctionID string
	for _, n := range g.Nodes {
		if n.Kind == graph.KindAndJunction {
			junctionID = n.ID
		}
	}
	require.NotEmpty(t, junctionID)
	assert.Equal(t, 0.05, frame.Nodes[junctionID].Opacity)
}

func TestRenderEdge_ColorsByRelationAndIncidence(t *testing.T) {
	prereq := graph.Edge{From: "A", To: "B", Relation: graph.RelationPrereq}
	coreq := graph.Edge{From: "A", To: "B", Relation: graph.RelationCoreq}

	idle := NewState()
	assert.Equal(t, "#f0c4c4", RenderEdge(prereq, idle).Color)
	assert.Equal(t, "#c4d5ee", RenderEdge(coreq, idle).Color)

	selected := State{Selected: map[string]struct{}{"A": {}}, Filter: catalog.CategoryAll}
	assert.Equal(t, "#d32f2f", RenderEdge(prereq, selected).Color)
	assert.Equal(t, "#1565c0", RenderEdge(coreq, selected).Color)

	other := State{Selected: map[string]struct{}{"C": {}}, Filter: catalog.CategoryAll}
	assert.Equal(t, "#f0c4c4", RenderEdge(prereq, other).Color)
}

func TestRender_FrameCoversEveryElement(t *testing.T) {
	g := renderGraph()

	frame := Render(g, NewState())

	assert.Len(t, frame.Nodes, len(g.Nodes))
	assert.Len(t, frame.Edges, len(g.Edges))
	for _, e := range g.Edges {
		_, ok := frame.Edges[e.ID()]
		assert.True(t, ok, "edge %s missing from frame", e.ID())
	}
}
