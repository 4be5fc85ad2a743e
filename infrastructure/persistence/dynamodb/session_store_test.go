package dynamodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/graph"
	"coursemap-backend/domain/session"
	"coursemap-backend/domain/viewstate"
)

func storedSession() *session.Session {
	nodes := []graph.Node{
		{ID: "COMP-202", Kind: graph.KindCourse, Code: "COMP-202", Category: "COMP"},
		{ID: "COMP-250", Kind: graph.KindCourse, Code: "COMP-250", Category: "COMP"},
	}
	edges := []graph.Edge{
		{From: "COMP-202", To: "COMP-250", Relation: graph.RelationPrereq},
	}

	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	return &session.Session{
		ID:      "sess-1",
		Program: "Computer Science",
		Graph:   graph.FromParts(nodes, edges),
		State: viewstate.State{
			Selected: map[string]struct{}{"COMP-250": {}},
			Filter:   catalog.Category("COMP"),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionItem_RoundTrip(t *testing.T) {
	// Arrange
	original := storedSession()

	// Act
	item, err := marshalSession(original)
	require.NoError(t, err)
	restored, err := unmarshalSession(item)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Program, restored.Program)
	assert.Equal(t, original.State.Selected, restored.State.Selected)
	assert.Equal(t, original.State.Filter, restored.State.Filter)
	assert.Equal(t, original.CreatedAt, restored.CreatedAt)
	assert.Equal(t, original.Graph.Nodes, restored.Graph.Nodes)
	assert.Equal(t, original.Graph.Edges, restored.Graph.Edges)
}

func TestSessionItem_RoundTripRebuildsIndexes(t *testing.T) {
	// The item stores only node and edge collections; the lookup indexes
	// the reducer and renderer rely on must come back on read.
	item, err := marshalSession(storedSession())
	require.NoError(t, err)

	restored, err := unmarshalSession(item)
	require.NoError(t, err)

	assert.True(t, restored.Graph.HasNode("COMP-202"))
	assert.ElementsMatch(t, []string{"COMP-202"}, restored.Graph.Neighbors("COMP-250"))

	next := viewstate.Reduce(restored.State, restored.Graph, viewstate.NodeClicked{NodeID: "COMP-202"})
	assert.True(t, next.IsSelected("COMP-202"))
}

func TestSessionItem_EmptyFilterDefaultsToAll(t *testing.T) {
	sess := storedSession()
	sess.State = viewstate.NewState()

	item, err := marshalSession(sess)
	require.NoError(t, err)
	item.Filter = ""

	restored, err := unmarshalSession(item)
	require.NoError(t, err)

	assert.Equal(t, catalog.CategoryAll, restored.State.Filter)
	assert.Empty(t, restored.State.Selected)
}

func TestSessionItem_MalformedGraphRejected(t *testing.T) {
	item, err := marshalSession(storedSession())
	require.NoError(t, err)
	item.Graph = `{"nodes": [`

	_, err = unmarshalSession(item)

	assert.Error(t, err)
}
