package server

import (
	"net/http"

	"github.com/gardar/pageview/pkg/hocr"
	"github.com/gardar/pageview/pkg/layout"
)

func (h *Handler) handleBlocks(w http.ResponseWriter, r *http.Request) {
	id, state, err := h.load(r)

	if err != nil {
		writeLoadError(w, err)
		return
	}

	page := state.Page

	result := Page{
		PID:   id.PID,
		Page:  id.Page,
		Label: id.Label(),

		Width:  jsonNumber(page.Width),
		Height: jsonNumber(page.Height),

		Blocks: make([]Block, 0, len(page.Blocks)),
	}

	for i, b := range page.Blocks {
		result.Blocks = append(result.Blocks, convertBlock(i, b))
	}

	writeJson(w, result)
}

func (h *Handler) handleHOCR(w http.ResponseWriter, r *http.Request) {
	id, state, err := h.load(r)

	if err != nil {
		writeLoadError(w, err)
		return
	}

	out, err := hocr.Generate(state.Page, id.Label())

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

func convertBlock(index int, b layout.Block) Block {
	block := Block{
		Index: index,
		Type:  b.Type,
		Text:  b.Text(),

		Lines: make([]Line, 0, len(b.Lines)),
	}

	for _, l := range b.Lines {
		block.Lines = append(block.Lines, Line{
			X:      jsonNumber(l.X),
			Y:      jsonNumber(l.Y),
			Width:  jsonNumber(l.Width),
			Height: jsonNumber(l.Height),

			Text: l.Text,
			Type: l.Type,
		})
	}

	if b.Polygon != nil {
		block.Polygon = make([]*float64, len(b.Polygon))

		for i, v := range b.Polygon {
			block.Polygon[i] = jsonNumber(v)
		}
	}

	return block
}
