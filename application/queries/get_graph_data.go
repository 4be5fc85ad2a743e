package queries

import (
	"fmt"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/graph"
)

// GetGraphDataQuery asks for the renderable graph of one program, or of the
// whole catalogue when Program is empty ("show all"). CatalogVersion is
// stamped by the handler caller so cached results from a superseded catalog
// are never served.
type GetGraphDataQuery struct {
	Program        string `json:"program,omitempty"`
	CatalogVersion int64  `json:"-"`
}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	return nil
}

// CacheKey implements bus.CacheKeyer.
func (q GetGraphDataQuery) CacheKey() string {
	return fmt.Sprintf("%s@%d", q.Program, q.CatalogVersion)
}

// GraphNodeDTO is the node shape handed to the rendering library.
type GraphNodeDTO struct {
	ID       string           `json:"id"`
	Kind     graph.Kind       `json:"kind"`
	Label    string           `json:"label"`
	Code     string           `json:"code,omitempty"`
	Category catalog.Category `json:"category,omitempty"`
	Count    int              `json:"count,omitempty"`
	Text     string           `json:"text,omitempty"`
}

// GraphEdgeDTO is the edge shape handed to the rendering library.
type GraphEdgeDTO struct {
	ID       string         `json:"id"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Relation graph.Relation `json:"relation"`
}

// GetGraphDataResult is the complete graph payload for visualization.
type GetGraphDataResult struct {
	Program    string             `json:"program,omitempty"`
	Nodes      []GraphNodeDTO     `json:"nodes"`
	Edges      []GraphEdgeDTO     `json:"edges"`
	Categories []catalog.Category `json:"categories"`
	Stats      graph.Stats        `json:"stats"`
}

// NewGraphDataResult maps a built graph into its API shape.
func NewGraphDataResult(program string, g *graph.Graph) GetGraphDataResult {
	nodes := make([]GraphNodeDTO, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		nodes = append(nodes, GraphNodeDTO{
			ID:       node.ID,
			Kind:     node.Kind,
			Label:    node.Label(),
			Code:     node.Code,
			Category: node.Category,
			Count:    node.Count,
			Text:     node.Text,
		})
	}

	edges := make([]GraphEdgeDTO, 0, len(g.Edges))
	for _, edge := range g.Edges {
		edges = append(edges, GraphEdgeDTO{
			ID:       edge.ID(),
			From:     edge.From,
			To:       edge.To,
			Relation: edge.Relation,
		})
	}

	return GetGraphDataResult{
		Program:    program,
		Nodes:      nodes,
		Edges:      edges,
		Categories: g.Categories(),
		Stats:      g.Stats(),
	}
}
