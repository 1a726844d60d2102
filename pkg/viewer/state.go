package viewer

import (
	"github.com/gardar/pageview/pkg/layout"
)

// NoHighlight is the highlight index meaning that no block is emphasized
const NoHighlight = -1

// State is an immutable snapshot of what the viewer shows.
// Transitions return a new State and never modify the receiver's blocks.
type State struct {
	Page           layout.Page
	HighlightIndex int // NoHighlight, or the index of the emphasized block
}

// NewState returns the state right after a page has been loaded
func NewState(page layout.Page) State {
	return State{
		Page:           page,
		HighlightIndex: NoHighlight,
	}
}

// Highlight returns a state with index emphasized.
// The index is not checked; one that matches no block highlights nothing.
func (s State) Highlight(index int) State {
	s.HighlightIndex = index
	return s
}

// ClearHighlight returns a state without emphasized block
func (s State) ClearHighlight() State {
	s.HighlightIndex = NoHighlight
	return s
}

// Highlighted reports whether the block at index is emphasized
func (s State) Highlighted(index int) bool {
	return index == s.HighlightIndex
}
