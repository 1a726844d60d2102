// Package fetch provides the sources a viewer reads page documents from.
//
// Document paths are relative to the location of the viewer itself, so every
// source is built from that location: a URL for HTTP, a directory for local
// files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrStatus is returned when the server answers with a non-success status
	ErrStatus = errors.New("unexpected response status")
	// ErrOutsideRoot is returned when a path leaves the site a Dir serves
	ErrOutsideRoot = errors.New("path escapes the site root")
)

// Source fetches a document by relative path
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

var (
	_ Source = (*HTTP)(nil)
	_ Source = Dir("")
)

// New returns an HTTP source for http and https locations, and a Dir
// source for anything else.
func New(location string, options ...Option) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(location, options...)
	}

	if location == "" {
		location = "."
	}
	return Dir(location), nil
}

// HTTP reads documents relative to the URL of the viewer page
type HTTP struct {
	client *http.Client
	base   *url.URL

	userAgent string
}

// Option configures an HTTP source
type Option func(*HTTP)

// WithClient sets the HTTP client
func WithClient(client *http.Client) Option {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithUserAgent sets the User-Agent header of requests
func WithUserAgent(userAgent string) Option {
	return func(h *HTTP) {
		h.userAgent = userAgent
	}
}

// NewHTTP creates a source resolving paths against base
func NewHTTP(base string, options ...Option) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", base)
	}

	h := &HTTP{
		client: http.DefaultClient,
		base:   u,
	}

	for _, option := range options {
		option(h)
	}

	return h, nil
}

// Resolve returns the absolute URL of path
func (h *HTTP) Resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	return h.base.ResolveReference(ref), nil
}

// Fetch downloads the document at path. A single attempt is made.
func (h *HTTP) Fetch(ctx context.Context, path string) ([]byte, error) {
	u, err := h.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s", ErrStatus, u, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Dir reads documents relative to a directory, the directory the viewer
// page would be served from.
//
// The viewer page sits two levels below the site root (docs/viewer), and
// reads are confined to that root: paths that climb out of it fail with
// ErrOutsideRoot, and symlinks cannot escape it either.
type Dir string

// Root returns the site root the directory belongs to
func (d Dir) Root() string {
	return filepath.Join(string(d), "..", "..")
}

// Fetch reads the file at path relative to the directory
func (d Dir) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootDir := d.Root()

	name, err := filepath.Rel(rootDir, filepath.Join(string(d), filepath.FromSlash(path)))
	if err != nil || !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}

	root, err := os.OpenRoot(rootDir)
	if err != nil {
		return nil, err
	}

	defer root.Close()

	return root.ReadFile(name)
}
