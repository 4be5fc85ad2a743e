package graph

import (
	"sort"

	"coursemap-backend/domain/catalog"
)

// Graph is the immutable output of one build pass: the node and edge
// collections handed to the rendering library, plus the lookup indexes the
// view-state engine needs. It is rebuilt wholesale on every program change,
// never patched.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	byID      map[string]Node
	adjacency map[string][]string
}

// Stats summarizes a graph for API payloads.
type Stats struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

func newGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		Nodes:     nodes,
		Edges:     edges,
		byID:      make(map[string]Node, len(nodes)),
		adjacency: make(map[string][]string, len(nodes)),
	}

	for _, node := range nodes {
		g.byID[node.ID] = node
	}
	for _, edge := range edges {
		g.adjacency[edge.From] = append(g.adjacency[edge.From], edge.To)
		g.adjacency[edge.To] = append(g.adjacency[edge.To], edge.From)
	}

	return g
}

// Empty returns a graph with no nodes or edges.
func Empty() *Graph {
	return newGraph(nil, nil)
}

// FromParts reassembles a graph from stored node and edge collections,
// rebuilding the lookup indexes. Inputs are trusted to be a prior Build
// output; no deduplication is applied.
func FromParts(nodes []Node, edges []Edge) *Graph {
	return newGraph(nodes, edges)
}

// HasNode reports whether an ID exists in this graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// NodeByID returns the node with the given ID.
func (g *Graph) NodeByID(id string) (Node, bool) {
	node, ok := g.byID[id]
	return node, ok
}

// Neighbors returns the IDs directly connected to a node by an incoming or
// outgoing edge. May contain duplicates when parallel relations exist;
// callers treat it as a set.
func (g *Graph) Neighbors(id string) []string {
	return g.adjacency[id]
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	return Stats{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges)}
}

// Categories returns the distinct categories of the course nodes, sorted,
// for the category dropdown and the category -> style group mapping.
func (g *Graph) Categories() []catalog.Category {
	seen := make(map[catalog.Category]struct{})
	for _, node := range g.Nodes {
		if node.Kind == KindCourse && node.Category != "" {
			seen[node.Category] = struct{}{}
		}
	}

	categories := make([]catalog.Category, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
