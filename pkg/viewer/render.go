package viewer

import (
	"image/color"
	"math"

	"github.com/gardar/pageview/pkg/layout"
)

// Style is the stroke used for a block outline
type Style struct {
	LineWidth float64
	Color     color.RGBA
}

var (
	// DefaultStyle strokes blocks that are not highlighted
	DefaultStyle = Style{LineWidth: 1.5, Color: color.RGBA{A: 0xff}}
	// HighlightStyle strokes the highlighted block
	HighlightStyle = Style{LineWidth: 3, Color: color.RGBA{R: 0xff, A: 0xff}}
)

// Path is a closed block outline in canvas pixels
type Path struct {
	Index  int            // Index of the block in State.Page.Blocks
	Points []layout.Point // Scaled vertices
	Style  Style
}

// Drawable returns the vertices a canvas would actually visit:
// points with a NaN or infinite coordinate are skipped.
func (p Path) Drawable() []layout.Point {
	points := make([]layout.Point, 0, len(p.Points))
	for _, pt := range p.Points {
		if pt.Finite() {
			points = append(points, pt)
		}
	}
	return points
}

// ScaledLine is a text line positioned in canvas pixels
type ScaledLine struct {
	Block  int // Index of the owning block
	X, Y   float64
	Width  float64
	Height float64
	Text   string
}

// Surface is a 2D drawing target, the counterpart of a canvas context
type Surface interface {
	// Size returns the surface size in pixels
	Size() (width, height float64)
	// Clear wipes the surface and fills it with white
	Clear()
	// StrokePath draws the closed outline through the drawable points
	StrokePath(path Path)
}

// TextSurface is implemented by surfaces that can also carry line text
type TextSurface interface {
	Surface
	DrawText(lines []ScaledLine)
}

// Scale returns the uniform factor that fits the page into the canvas
func Scale(dim layout.Dimensions, canvasWidth, canvasHeight float64) float64 {
	return math.Min(canvasWidth/dim.Width, canvasHeight/dim.Height)
}

// ComputeScaledPaths returns the outlines to draw, in block order.
// Blocks without polygon produce no path.
func ComputeScaledPaths(state State, canvasWidth, canvasHeight float64) []Path {
	scale := Scale(state.Page.Dimensions, canvasWidth, canvasHeight)

	var paths []Path
	for i, block := range state.Page.Blocks {
		if block.Polygon == nil {
			continue
		}

		style := DefaultStyle
		if state.Highlighted(i) {
			style = HighlightStyle
		}

		points := block.Polygon.Points()
		for j := range points {
			points[j].X *= scale
			points[j].Y *= scale
		}

		paths = append(paths, Path{
			Index:  i,
			Points: points,
			Style:  style,
		})
	}
	return paths
}

// ComputeScaledLines returns every line box scaled like the outlines
func ComputeScaledLines(state State, canvasWidth, canvasHeight float64) []ScaledLine {
	scale := Scale(state.Page.Dimensions, canvasWidth, canvasHeight)

	var lines []ScaledLine
	for i, block := range state.Page.Blocks {
		for _, ln := range block.Lines {
			lines = append(lines, ScaledLine{
				Block:  i,
				X:      ln.X * scale,
				Y:      ln.Y * scale,
				Width:  ln.Width * scale,
				Height: ln.Height * scale,
				Text:   ln.Text,
			})
		}
	}
	return lines
}

// Render redraws the whole state onto the surface
func Render(s Surface, state State) {
	width, height := s.Size()

	s.Clear()
	for _, path := range ComputeScaledPaths(state, width, height) {
		s.StrokePath(path)
	}

	if ts, ok := s.(TextSurface); ok {
		ts.DrawText(ComputeScaledLines(state, width, height))
	}
}
