// Implements a raster surface for the viewer,
// by wrapping rasterx.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/gardar/pageview/pkg/layout"
	"github.com/gardar/pageview/pkg/viewer"
)

var _ viewer.Surface = (*Canvas)(nil) // assert interface conformance

// miterLimit matches the default of a 2D canvas context
const miterLimit = 10

// maxCoord keeps coordinates well inside the range of fixed.Int26_6
const maxCoord = 1e6

// Canvas is an in-memory RGBA surface
type Canvas struct {
	img    *image.RGBA
	dasher *rasterx.Dasher
}

// New returns a canvas of the given pixel size.
// The canvas is transparent until the first Clear.
func New(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		img:    img,
		dasher: rasterx.NewDasher(width, height, scanner),
	}
}

func (c *Canvas) Size() (width, height float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
}

// StrokePath strokes the closed outline. Paths with fewer than two drawable
// points leave no mark.
func (c *Canvas) StrokePath(path viewer.Path) {
	points := path.Drawable()
	if len(points) < 2 {
		return
	}

	d := c.dasher
	d.Clear()
	d.SetStroke(fixed.Int26_6(path.Style.LineWidth*64), fixed.Int26_6(miterLimit*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
	d.SetColor(path.Style.Color)

	d.Start(toFixed(points[0]))
	for _, pt := range points[1:] {
		d.Line(toFixed(pt))
	}
	d.Stop(true)
	d.Draw()
}

func toFixed(pt layout.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(clamp(pt.X) * 64),
		Y: fixed.Int26_6(clamp(pt.Y) * 64),
	}
}

func clamp(v float64) float64 {
	return math.Max(-maxCoord, math.Min(maxCoord, v))
}

// Image returns the underlying image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// EncodePNG writes the canvas as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
