package graph

import "fmt"

// Edge is one renderable edge, pointing from a requirement toward the
// course that requires it.
type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Relation Relation `json:"relation"`
}

// ID is a pure function of (from, to, relation). Edges reached along more
// than one recursive path collapse to the same ID, which is the sole
// deduplication mechanism for edges.
func (e Edge) ID() string {
	return fmt.Sprintf("%s->%s:%s", e.From, e.To, e.Relation)
}
