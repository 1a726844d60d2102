package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gardar/pageview/pkg/layout"
	"github.com/gardar/pageview/pkg/viewer"
)

// Bounds of a requested canvas, per side and in total
const (
	maxCanvasSize   = 8192
	maxCanvasPixels = 16 << 20
)

func valueIdentity(r *http.Request) viewer.PageIdentity {
	return viewer.IdentityFromQuery(r.URL.Query())
}

func valueHighlight(r *http.Request) (int, error) {
	val := r.URL.Query().Get("highlight")

	if val == "" {
		return viewer.NoHighlight, nil
	}

	index, err := strconv.Atoi(val)

	if err != nil {
		return 0, fmt.Errorf("invalid highlight %q", val)
	}

	return index, nil
}

func valueSize(r *http.Request, name string, fallback int) (int, error) {
	val := r.URL.Query().Get(name)

	if val == "" {
		return fallback, nil
	}

	size, err := strconv.Atoi(val)

	if err != nil || size <= 0 || size > maxCanvasSize {
		return 0, fmt.Errorf("invalid %s %q", name, val)
	}

	return size, nil
}

func valueCanvas(r *http.Request, fallbackWidth, fallbackHeight int) (int, int, error) {
	width, err := valueSize(r, "width", fallbackWidth)

	if err != nil {
		return 0, 0, err
	}

	height, err := valueSize(r, "height", fallbackHeight)

	if err != nil {
		return 0, 0, err
	}

	if width*height > maxCanvasPixels {
		return 0, 0, fmt.Errorf("canvas %dx%d exceeds %d pixels", width, height, maxCanvasPixels)
	}

	return width, height, nil
}

func valueFormat(r *http.Request) (string, error) {
	switch val := r.URL.Query().Get("format"); val {
	case "", "png":
		return "png", nil
	case "pdf":
		return "pdf", nil
	default:
		return "", fmt.Errorf("unsupported format %q", val)
	}
}

func (h *Handler) parseOptions() []layout.ParseOption {
	if h.Strict {
		return []layout.ParseOption{layout.WithStrict()}
	}

	return nil
}

func (h *Handler) load(r *http.Request) (viewer.PageIdentity, viewer.State, error) {
	id := valueIdentity(r)

	state, err := viewer.Load(r.Context(), h.source, id, h.parseOptions()...)

	if err != nil {
		h.logger.Warn("failed to load page", "pid", id.PID, "page", id.Page, "error", err)
	}

	return id, state, err
}

// writeLoadError answers a failed load. Details of server side failures
// stay in the log.
func writeLoadError(w http.ResponseWriter, err error) {
	code := statusFor(err)

	if code >= http.StatusInternalServerError {
		writeError(w, code, nil)
		return
	}

	writeError(w, code, err)
}

// jsonNumber maps NaN and infinities, which JSON cannot carry, to null
func jsonNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}
