package layout

import (
	"math"
	"strings"
)

// DefaultBlockType is used for blocks whose first line carries no TYPE.
const DefaultBlockType = "text"

// Dimensions is the page size in page units
type Dimensions struct {
	Width  float64 // PAGE/@WIDTH
	Height float64 // PAGE/@HEIGHT
}

// Page is one parsed page-description document
type Page struct {
	Dimensions
	Blocks []Block // Text blocks in document order
}

// Block is a text region on the page
// Corresponds to the TEXTBLOCK element
type Block struct {
	Type    string  // First line's TYPE, or DefaultBlockType
	Lines   []Line  // Lines in document order
	Polygon Polygon // Outline, nil when the block has no POLYGON
}

// Line is one recognized text line inside a block
// Corresponds to the LINE element
type Line struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Text   string  // STRING attribute, verbatim
	Type   *string // TYPE attribute, nil when absent
}

// Polygon is a flat sequence of alternating x,y coordinates
type Polygon []float64

// Point is a single x,y coordinate pair
type Point struct {
	X, Y float64
}

// Points pairs up the coordinates of the polygon.
// A trailing coordinate without a partner is dropped.
func (p Polygon) Points() []Point {
	if len(p) < 2 {
		return nil
	}
	points := make([]Point, 0, len(p)/2)
	for i := 0; i+1 < len(p); i += 2 {
		points = append(points, Point{X: p[i], Y: p[i+1]})
	}
	return points
}

// Bounds returns the extent of the finite points of the polygon.
// ok is false when the polygon has no finite point.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points() {
		if !pt.Finite() {
			continue
		}
		ok = true
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY, ok
}

// Finite reports whether both coordinates are finite numbers
func (pt Point) Finite() bool {
	return !math.IsNaN(pt.X) && !math.IsInf(pt.X, 0) &&
		!math.IsNaN(pt.Y) && !math.IsInf(pt.Y, 0)
}

// Text joins the text of all lines of the block, one line per row
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}

// LineType returns the line type, or the empty string when absent
func (l Line) LineType() string {
	if l.Type == nil {
		return ""
	}
	return *l.Type
}

// LineCount returns the number of lines over all blocks
func (p Page) LineCount() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Lines)
	}
	return n
}
