// Package viewer shows a page-description document as block outlines on a
// drawing surface, with one block at a time drawn in emphasis.
//
// The package is split in two layers. State, ComputeScaledPaths and Render
// are pure: a State is an immutable snapshot and drawing it depends only on
// the state and the surface size. Viewer wraps them into a component that
// loads a page from a Source, keeps the current State and redraws after
// every highlight change.
//
// Viewer is not safe for concurrent use; like the page it replaces, it is
// driven from a single control flow.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/gardar/pageview/pkg/layout"
)

// ErrFetch wraps failures to retrieve the page document
var ErrFetch = errors.New("failed to fetch page document")

// Source retrieves a document by its path relative to the viewer
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Option configures a Viewer
type Option func(*Viewer)

// WithParseOptions passes options to layout.ParseDocument on Load
func WithParseOptions(opts ...layout.ParseOption) Option {
	return func(v *Viewer) {
		v.parseOpts = append(v.parseOpts, opts...)
	}
}

// Viewer is the page annotation viewer component
type Viewer struct {
	source  Source
	surface Surface

	parseOpts []layout.ParseOption

	identity PageIdentity
	state    State
}

// New creates a viewer that reads documents from source and draws on surface
func New(source Source, surface Surface, options ...Option) *Viewer {
	v := &Viewer{
		source:  source,
		surface: surface,
		state:   NewState(layout.Page{}),
	}

	for _, option := range options {
		option(v)
	}

	return v
}

// Load fetches and parses the page named by id, then draws it.
// On failure the viewer keeps no blocks and the surface is left untouched.
func (v *Viewer) Load(ctx context.Context, id PageIdentity) error {
	v.identity = id
	v.state = NewState(layout.Page{})

	state, err := Load(ctx, v.source, id, v.parseOpts...)
	if err != nil {
		return err
	}

	v.state = state
	v.Render()
	return nil
}

// Load fetches and parses the page named by id into a fresh State
func Load(ctx context.Context, source Source, id PageIdentity, opts ...layout.ParseOption) (State, error) {
	path := id.ResourcePath()

	data, err := source.Fetch(ctx, path)
	if err != nil {
		return State{}, fmt.Errorf("%w %s: %w", ErrFetch, path, err)
	}

	page, err := layout.ParseDocument(data, opts...)
	if err != nil {
		return State{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return NewState(page), nil
}

// HighlightBlock emphasizes the block at index and redraws
func (v *Viewer) HighlightBlock(index int) {
	v.state = v.state.Highlight(index)
	v.Render()
}

// ClearHighlight removes the emphasis and redraws
func (v *Viewer) ClearHighlight() {
	v.state = v.state.ClearHighlight()
	v.Render()
}

// Render draws the current state
func (v *Viewer) Render() {
	Render(v.surface, v.state)
}

// State returns the current snapshot
func (v *Viewer) State() State {
	return v.state
}

// Identity returns the page last passed to Load
func (v *Viewer) Identity() PageIdentity {
	return v.identity
}

// Label is the display string of the current page
func (v *Viewer) Label() string {
	return v.identity.Label()
}
