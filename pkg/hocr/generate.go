package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/gardar/pageview/pkg/layout"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

// emptyType marks a line whose TYPE is present but empty
const emptyType = `""`

type templateData struct {
	Title     string
	PageTitle string
	Blocks    []templateBlock
}

type templateBlock struct {
	ID    string
	Title string
	Lines []templateLine
}

type templateLine struct {
	ID    string
	Title string
	Text  string
}

// Generate creates an hOCR HTML document for the page
// Uses the embedded template to generate a complete HTML document.
// Boxes are rounded to integers and non-finite boxes are left out, which
// Parse reads back as NaN.
func Generate(page layout.Page, title string) (string, error) {
	// Set up the template with a helper function
	tmpl, err := template.New("hocr.tmpl").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	data := templateData{
		Title:     title,
		PageTitle: formatTitle(property{"bbox", bboxValues(0, 0, page.Width, page.Height)}),
	}

	for i, block := range page.Blocks {
		tb := templateBlock{
			ID:    fmt.Sprintf("block_1_%d", i+1),
			Title: blockTitle(block),
		}
		for j, line := range block.Lines {
			tb.Lines = append(tb.Lines, templateLine{
				ID:    fmt.Sprintf("line_1_%d_%d", i+1, j+1),
				Title: lineTitle(line),
				Text:  line.Text,
			})
		}
		data.Blocks = append(data.Blocks, tb)
	}

	// Render the template with the page data
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}

	return buf.String(), nil
}

type property struct {
	key    string
	values []string
}

// formatTitle joins properties into a title attribute value,
// skipping properties without values
func formatTitle(props ...property) string {
	var parts []string
	for _, p := range props {
		if len(p.values) == 0 {
			continue
		}
		parts = append(parts, p.key+" "+strings.Join(p.values, " "))
	}
	return strings.Join(parts, "; ")
}

func blockTitle(block layout.Block) string {
	var bbox []string
	if x1, y1, x2, y2, ok := block.Polygon.Bounds(); ok {
		bbox = bboxValues(x1, y1, x2, y2)
	} else if x1, y1, x2, y2, ok := linesBounds(block.Lines); ok {
		bbox = bboxValues(x1, y1, x2, y2)
	}

	var poly []string
	if len(block.Polygon) >= 2 && len(block.Polygon)%2 == 0 && allFinite(block.Polygon) {
		for _, v := range block.Polygon {
			poly = append(poly, formatNumber(v))
		}
	}

	var typ []string
	if block.Type != "" {
		typ = []string{block.Type}
	}

	return formatTitle(
		property{"bbox", bbox},
		property{"poly", poly},
		property{"x_type", typ},
	)
}

func lineTitle(line layout.Line) string {
	var bbox []string
	if allFinite([]float64{line.X, line.Y, line.Width, line.Height}) {
		bbox = bboxValues(line.X, line.Y, line.X+line.Width, line.Y+line.Height)
	}

	var typ []string
	if line.Type != nil {
		typ = []string{*line.Type}
		if *line.Type == "" {
			typ = []string{emptyType}
		}
	}

	return formatTitle(
		property{"bbox", bbox},
		property{"x_type", typ},
	)
}

// bboxValues rounds the corners to integers as hOCR requires.
// Non-finite corners yield no values.
func bboxValues(x1, y1, x2, y2 float64) []string {
	coords := []float64{x1, y1, x2, y2}
	if !allFinite(coords) {
		return nil
	}
	values := make([]string, len(coords))
	for i, v := range coords {
		values[i] = strconv.FormatInt(int64(math.Round(v)), 10)
	}
	return values
}

func linesBounds(lines []layout.Line) (minX, minY, maxX, maxY float64, ok bool) {
	var poly layout.Polygon
	for _, l := range lines {
		poly = append(poly, l.X, l.Y, l.X+l.Width, l.Y+l.Height)
	}
	return poly.Bounds()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
