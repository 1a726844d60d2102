package server

import (
	"bytes"
	"net/http"

	"github.com/gardar/pageview/pkg/pdfocr"
	"github.com/gardar/pageview/pkg/raster"
	"github.com/gardar/pageview/pkg/viewer"
)

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	highlight, err := valueHighlight(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	width, height, err := valueCanvas(r, h.Width, h.Height)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format, err := valueFormat(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	_, state, err := h.load(r)

	if err != nil {
		writeLoadError(w, err)
		return
	}

	state = state.Highlight(highlight)

	var buf bytes.Buffer

	switch format {
	case "pdf":
		canvas := pdfocr.New(float64(width), float64(height), h.PDF)
		viewer.Render(canvas, state)

		if err := canvas.Output(&buf); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")

	default:
		canvas := raster.New(width, height)
		viewer.Render(canvas, state)

		if err := canvas.EncodePNG(&buf); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
	}

	w.Write(buf.Bytes())
}
