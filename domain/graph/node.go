// Package graph materializes a display set of courses into the node/edge
// collections handed to the rendering library, synthesizing junction nodes
// for the logical structure of requirement trees.
package graph

import (
	"fmt"

	"coursemap-backend/domain/catalog"
)

// Kind tags the variant of a graph node. Every consumer switches on the tag
// instead of sniffing ID strings.
type Kind string

const (
	KindCourse      Kind = "course"
	KindAndJunction Kind = "and"
	KindOrJunction  Kind = "or"
	KindNOfList     Kind = "n_of_list"
	KindTextual     Kind = "textual"
)

// Relation distinguishes prerequisite edges from corequisite edges.
type Relation string

const (
	RelationPrereq Relation = "prereq"
	RelationCoreq  Relation = "coreq"
)

// Node is one renderable graph node. Course nodes carry Code and Category;
// n-of-list junctions carry Count; textual leaves carry Text.
type Node struct {
	ID       string           `json:"id"`
	Kind     Kind             `json:"kind"`
	Code     string           `json:"code,omitempty"`
	Category catalog.Category `json:"category,omitempty"`
	Count    int              `json:"count,omitempty"`
	Text     string           `json:"text,omitempty"`
}

// Label is the display text the rendering library shows on the node.
func (n Node) Label() string {
	switch n.Kind {
	case KindCourse:
		return n.Code
	case KindAndJunction:
		return "AND"
	case KindOrJunction:
		return "OR"
	case KindNOfList:
		return fmt.Sprintf("%d of:", n.Count)
	case KindTextual:
		return n.Text
	default:
		return n.ID
	}
}

// Key identifies a synthetic node by structure rather than by traversal
// order: the course whose requirement tree owns it, the requirement kind,
// the junction kind, and an ordinal assigned in tree-walk order. Because a
// course's trees are walked exactly once per build in a fixed order, the
// same tree position always yields the same key, keeping rebuilds
// idempotent even when a junction is reached along several paths.
type Key struct {
	Owner    string
	Relation Relation
	Kind     Kind
	Ordinal  int
}

// String renders the key as the node's globally unique ID.
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%d", k.Kind, k.Relation, k.Owner, k.Ordinal)
}
