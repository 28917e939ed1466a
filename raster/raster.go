// Package raster draws charts into an in-memory image, for rendering
// without a window.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"git.sr.ht/~whereswaldon/soqview/colour"
	"git.sr.ht/~whereswaldon/soqview/plot"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type point struct {
	x, y float64
}

// Canvas is a plot.Surface backed by an *image.RGBA.
type Canvas struct {
	img    *image.RGBA
	face   font.Face
	z      *vector.Rasterizer
	paths  [][]point
	fill   colour.Colour
	stroke colour.Colour
	width  float64
}

var _ plot.Surface = (*Canvas)(nil)

// New returns a transparent canvas of the given size.
func New(width, height int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		face:  basicfont.Face7x13,
		z:     vector.NewRasterizer(width, height),
		fill:  colour.Black,
		width: 1,
	}
}

// Image returns the canvas contents.
func (c *Canvas) Image() *image.RGBA { return c.img }

// EncodePNG writes the canvas as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) MeasureText(s string) float64 {
	return float64(font.MeasureString(c.face, s).Ceil())
}

func (c *Canvas) FontHeight() float64 {
	return float64(c.face.Metrics().Height.Ceil())
}

func (c *Canvas) BeginPath() {
	c.paths = c.paths[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	c.paths = append(c.paths, []point{{x, y}})
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.paths) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := len(c.paths) - 1
	c.paths[last] = append(c.paths[last], point{x, y})
}

func (c *Canvas) ClosePath() {
	if len(c.paths) == 0 {
		return
	}
	sub := c.paths[len(c.paths)-1]
	if len(sub) > 1 {
		c.LineTo(sub[0].x, sub[0].y)
	}
}

func (c *Canvas) SetFillStyle(col colour.Colour) { c.fill = col }

func (c *Canvas) SetStrokeStyle(col colour.Colour, width float64) {
	c.stroke = col
	c.width = width
}

func (c *Canvas) reset() {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
}

func (c *Canvas) paint(col colour.Colour) {
	src := image.NewUniform(col.NRGBA())
	c.z.Draw(c.img, c.img.Bounds(), src, image.Point{})
}

// Fill fills every subpath of the current path, closing them implicitly.
func (c *Canvas) Fill() {
	c.reset()
	for _, sub := range c.paths {
		if len(sub) < 3 {
			continue
		}
		c.z.MoveTo(float32(sub[0].x), float32(sub[0].y))
		for _, p := range sub[1:] {
			c.z.LineTo(float32(p.x), float32(p.y))
		}
		c.z.ClosePath()
	}
	c.paint(c.fill)
}

// Stroke draws every segment of the current path as a quad of the stroke
// width.
func (c *Canvas) Stroke() {
	c.reset()
	half := c.width / 2
	for _, sub := range c.paths {
		for i := 1; i < len(sub); i++ {
			a, b := sub[i-1], sub[i]
			dx, dy := b.x-a.x, b.y-a.y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			// Extend each segment by half the width so joints overlap.
			ex, ey := dx/length*half, dy/length*half
			nx, ny := -ey, ex
			c.z.MoveTo(float32(a.x-ex+nx), float32(a.y-ey+ny))
			c.z.LineTo(float32(b.x+ex+nx), float32(b.y+ey+ny))
			c.z.LineTo(float32(b.x+ex-nx), float32(b.y+ey-ny))
			c.z.LineTo(float32(a.x-ex-nx), float32(a.y-ey-ny))
			c.z.ClosePath()
		}
	}
	c.paint(c.stroke)
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	draw.Draw(c.img, r, image.NewUniform(c.fill.NRGBA()), image.Point{}, draw.Over)
}

func (c *Canvas) FillText(s string, x, y float64, align plot.Align) {
	left := plot.AlignedX(x, c.MeasureText(s), align)
	m := c.face.Metrics()
	// Place the baseline so the line box is centred on y.
	baseline := y - float64(m.Height.Ceil())/2 + float64(m.Ascent.Ceil())
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(color.Color(c.fill.NRGBA())),
		Face: c.face,
		Dot:  fixed.P(int(math.Round(left)), int(math.Round(baseline))),
	}
	d.DrawString(s)
}
