package viewstate

import (
	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/graph"
)

// Reduce applies one interaction event to a state against the current
// graph and returns the next state. It never mutates its inputs. A click on
// a node ID absent from the graph is a no-op.
func Reduce(state State, g *graph.Graph, event Event) State {
	switch ev := event.(type) {
	case NodeClicked:
		if !g.HasNode(ev.NodeID) {
			return state
		}
		selected := make(map[string]struct{}, len(state.Selected)+1)
		for id := range state.Selected {
			selected[id] = struct{}{}
		}
		selected[ev.NodeID] = struct{}{}
		return state.withSelected(selected)

	case BackgroundClicked:
		return state.withSelected(map[string]struct{}{})

	case FilterChanged:
		filter := ev.Filter
		if filter == "" {
			filter = catalog.CategoryAll
		}
		return State{Selected: map[string]struct{}{}, Filter: filter}

	case ProgramChanged:
		return state.withSelected(map[string]struct{}{})

	default:
		return state
	}
}
