package viewstate

import "coursemap-backend/domain/graph"

// NodeAttrs are the visual attributes the rendering library applies to one
// node.
type NodeAttrs struct {
	Opacity     float64 `json:"opacity"`
	FontColor   string  `json:"font_color"`
	BorderWidth int     `json:"border_width"`
}

// EdgeAttrs are the visual attributes for one edge.
type EdgeAttrs struct {
	Color string `json:"color"`
}

// Frame is a complete render pass: attributes for every node and edge in
// the graph, keyed by ID. Frames are recomputed in full on every qualifying
// event and never patched incrementally.
type Frame struct {
	Nodes map[string]NodeAttrs `json:"nodes"`
	Edges map[string]EdgeAttrs `json:"edges"`
}

const (
	opacityFull   = 1.0
	opacityDimmed = 0.15
	opacityHidden = 0.05

	fontColorNormal = "#343434"
	fontColorDimmed = "#c8c8c8"

	borderNormal   = 1
	borderSelected = 2
)

// Edge colour families by relation; state picks the intensity only.
var edgeColors = map[graph.Relation]struct{ highlight, dim string }{
	graph.RelationPrereq: {highlight: "#d32f2f", dim: "#f0c4c4"},
	graph.RelationCoreq:  {highlight: "#1565c0", dim: "#c4d5ee"},
}

// RenderNode derives one node's attributes. Precedence, in order:
//
//  1. Out-of-category nodes are fully dimmed regardless of selection.
//     Junction and textual nodes have no category, so they only pass a
//     non-"all" filter implicitly through rule 3 being skipped; they dim
//     whenever a specific category is active.
//  2. With a non-empty selection, in-category nodes render fully only when
//     they are selected or adjacent to a selected node.
//  3. With an empty selection, all in-category nodes render fully.
func RenderNode(node graph.Node, state State, g *graph.Graph) NodeAttrs {
	return renderNode(node, state, highlightSet(state, g))
}

func renderNode(node graph.Node, state State, highlight map[string]struct{}) NodeAttrs {
	if !node.Category.Matches(state.Filter) {
		return NodeAttrs{
			Opacity:     opacityHidden,
			FontColor:   fontColorDimmed,
			BorderWidth: 0,
		}
	}

	if state.HasSelection() {
		if _, ok := highlight[node.ID]; !ok {
			return NodeAttrs{
				Opacity:     opacityDimmed,
				FontColor:   fontColorDimmed,
				BorderWidth: borderNormal,
			}
		}
		border := borderNormal
		if state.IsSelected(node.ID) {
			border = borderSelected
		}
		return NodeAttrs{
			Opacity:     opacityFull,
			FontColor:   fontColorNormal,
			BorderWidth: border,
		}
	}

	return NodeAttrs{
		Opacity:     opacityFull,
		FontColor:   fontColorNormal,
		BorderWidth: borderNormal,
	}
}

// RenderEdge derives one edge's attributes: the relation picks the colour
// family, and the edge renders in its highlight shade only when incident to
// a selected node.
func RenderEdge(edge graph.Edge, state State) EdgeAttrs {
	colors, ok := edgeColors[edge.Relation]
	if !ok {
		colors = edgeColors[graph.RelationPrereq]
	}

	if state.HasSelection() && (state.IsSelected(edge.From) || state.IsSelected(edge.To)) {
		return EdgeAttrs{Color: colors.highlight}
	}
	return EdgeAttrs{Color: colors.dim}
}

// Render computes a full frame for the graph under the given state.
func Render(g *graph.Graph, state State) Frame {
	frame := Frame{
		Nodes: make(map[string]NodeAttrs, len(g.Nodes)),
		Edges: make(map[string]EdgeAttrs, len(g.Edges)),
	}

	highlight := highlightSet(state, g)
	for _, node := range g.Nodes {
		frame.Nodes[node.ID] = renderNode(node, state, highlight)
	}
	for _, edge := range g.Edges {
		frame.Edges[edge.ID()] = RenderEdge(edge, state)
	}

	return frame
}

// highlightSet is the selection plus every node adjacent to it.
func highlightSet(state State, g *graph.Graph) map[string]struct{} {
	highlight := make(map[string]struct{}, len(state.Selected)*4)
	for id := range state.Selected {
		highlight[id] = struct{}{}
		for _, neighbor := range g.Neighbors(id) {
			highlight[neighbor] = struct{}{}
		}
	}
	return highlight
}
