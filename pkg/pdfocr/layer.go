package pdfocr

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/pageview/pkg/viewer"
)

// drawTextLayer draws the line text onto a layer of the current pdf page.
// The page number is used to create unique layer names for each page.
func drawTextLayer(c *Canvas, lines []viewer.ScaledLine) {
	pdf := c.pdf
	fontConfig := c.config.Font

	// Format layer name with page number
	layerName := fmt.Sprintf("%s (Page %d)", c.config.LayerName, c.pages)

	layer := pdf.AddLayer(layerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(fontConfig.Name, fontConfig.Style, fontConfig.Size)

	if c.config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetAlpha(1.0, "Normal")
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	for _, line := range lines {
		if !drawable(line) {
			continue
		}
		drawLine(c, line)
		c.lineCount++
	}

	pdf.SetAlpha(1.0, "Normal")
	pdf.SetTextColor(0, 0, 0)
	pdf.EndLayer()
}

// drawLine renders a single line, stretched to the width of its box
func drawLine(c *Canvas, line viewer.ScaledLine) {
	pdf := c.pdf
	fontConfig := c.config.Font

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(line.Text)
	if err != nil {
		// Track encoding errors but continue
		c.encodingErrors++
		latin1 = line.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 && line.Width > 0 {
		scale := line.Width / strWidth
		pdf.SetFontSize(fontConfig.Size * scale)
	}

	fontSize, _ := pdf.GetFontSize()
	y := line.Y + fontSize*fontConfig.AscentRatio

	pdf.Text(line.X, y, latin1)
	pdf.SetFontSize(fontConfig.Size)

	if c.config.Debug {
		pdf.SetDrawColor(255, 0, 0)
		pdf.SetLineWidth(0.5)
		pdf.Rect(line.X, line.Y, line.Width, line.Height, "D")
	}
}

func drawable(line viewer.ScaledLine) bool {
	if line.Text == "" {
		return false
	}
	for _, v := range []float64{line.X, line.Y, line.Width, line.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
