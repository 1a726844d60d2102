// Package pdfocr provides a PDF surface for the page viewer.
//
// The surface draws block outlines as vector paths and, when the text layer
// is enabled, places the text of every recognized line at the line's
// position. The text sits in its own optional content layer and is
// invisible unless debug mode is on, so the resulting PDF is:
// - Fully searchable
// - Selectable with mouse drag operations
// - Toggleable in compatible PDF readers, showing just the text layer
//
// Every call to Clear starts a new PDF page, so repeated
// renders (for example one per highlighted block) become consecutive pages.
//
// Main Functions:
//
// - New: Creates a PDF canvas of the given size
// - Canvas.Output: Writes the finished PDF
package pdfocr

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/pageview/pkg/viewer"
)

var _ viewer.TextSurface = (*Canvas)(nil)

// Canvas is a PDF document used as drawing surface
type Canvas struct {
	pdf    *fpdf.Fpdf
	config Config

	width, height float64
	pages         int

	encodingErrors int
	lineCount      int
}

// New creates a PDF canvas whose pages measure width x height points
func New(width, height float64, config Config) *Canvas {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	return &Canvas{
		pdf:    pdf,
		config: config,
		width:  width,
		height: height,
	}
}

func (c *Canvas) Size() (width, height float64) {
	return c.width, c.height
}

// Clear starts a new page filled with white
func (c *Canvas) Clear() {
	c.pdf.AddPageFormat("P", fpdf.SizeType{Wd: c.width, Ht: c.height})
	c.pages++

	c.pdf.SetFillColor(255, 255, 255)
	c.pdf.Rect(0, 0, c.width, c.height, "F")
}

func (c *Canvas) StrokePath(path viewer.Path) {
	points := path.Drawable()
	if len(points) < 2 {
		return
	}
	c.ensurePage()

	polygon := make([]fpdf.PointType, len(points))
	for i, pt := range points {
		polygon[i] = fpdf.PointType{X: pt.X, Y: pt.Y}
	}

	col := path.Style.Color
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetLineWidth(path.Style.LineWidth)
	c.pdf.SetLineJoinStyle("miter")
	c.pdf.Polygon(polygon, "D")
}

// DrawText writes the line text into the text layer of the current page.
// Nothing is drawn when the text layer is disabled.
func (c *Canvas) DrawText(lines []viewer.ScaledLine) {
	if !c.config.TextLayer || len(lines) == 0 {
		return
	}
	c.ensurePage()
	drawTextLayer(c, lines)
}

// Pages returns the number of pages written so far
func (c *Canvas) Pages() int {
	return c.pages
}

// Err reports fpdf errors and excessive text encoding failures
func (c *Canvas) Err() error {
	if err := c.pdf.Error(); err != nil {
		return err
	}

	// Report encoding errors if more than a threshold
	if c.lineCount > 0 && c.encodingErrors > 0 && c.encodingErrors > c.lineCount/10 {
		return fmt.Errorf("character encoding issues in %d of %d lines",
			c.encodingErrors, c.lineCount)
	}

	return nil
}

// Output writes the PDF document
func (c *Canvas) Output(w io.Writer) error {
	c.ensurePage()
	if err := c.Err(); err != nil {
		return err
	}
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

func (c *Canvas) ensurePage() {
	if c.pages == 0 {
		c.Clear()
	}
}
