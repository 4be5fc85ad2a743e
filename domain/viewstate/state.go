// Package viewstate derives per-element render attributes from the current
// selection and category filter. The derivation is a pure function of
// (state, graph); interaction handling is a reducer over an event enum, so
// the decision logic stays independent of any rendering binding.
package viewstate

import "coursemap-backend/domain/catalog"

// State is the full interaction state: which node IDs are selected and
// which category filter is active. Values are immutable; every transition
// produces a fresh State.
type State struct {
	Selected map[string]struct{}
	Filter   catalog.Category
}

// NewState returns the initial state: nothing selected, "all" filter.
func NewState() State {
	return State{
		Selected: map[string]struct{}{},
		Filter:   catalog.CategoryAll,
	}
}

// IsSelected reports whether a node ID is in the selection set.
func (s State) IsSelected(id string) bool {
	_, ok := s.Selected[id]
	return ok
}

// HasSelection reports whether any node is selected.
func (s State) HasSelection() bool {
	return len(s.Selected) > 0
}

// SelectedIDs returns the selection as a slice. Order is unspecified.
func (s State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	return ids
}

func (s State) withSelected(selected map[string]struct{}) State {
	return State{Selected: selected, Filter: s.Filter}
}

// Event is one user interaction, a closed set of variants consumed by
// Reduce.
type Event interface {
	isEvent()
}

// NodeClicked adds a node to the selection (cumulative across clicks).
type NodeClicked struct {
	NodeID string
}

// BackgroundClicked clears the selection.
type BackgroundClicked struct{}

// FilterChanged switches the category filter and clears the selection.
type FilterChanged struct {
	Filter catalog.Category
}

// ProgramChanged follows a full graph rebuild: the selection is cleared
// because its IDs no longer exist, the filter is preserved.
type ProgramChanged struct{}

func (NodeClicked) isEvent()       {}
func (BackgroundClicked) isEvent() {}
func (FilterChanged) isEvent()     {}
func (ProgramChanged) isEvent()    {}
