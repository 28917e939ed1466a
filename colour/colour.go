// Package colour implements the small amount of channel arithmetic the
// chart renderer needs to derive stroke and fill styles.
package colour

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// DefaultStep is the channel offset used by Lighten and Darken.
const DefaultStep = 16

// Luminance weights for relative luminance.
var luminance = [3]float64{0.2126, 0.7152, 0.0722}

// Colour is an immutable RGBA value. R, G and B are nominally in [0,255]
// and A in [0,1], but intermediate values may leave those ranges; Clip
// brings them back.
type Colour struct {
	R, G, B, A float64
}

// RGBA builds a Colour from its channels.
func RGBA(r, g, b, a float64) Colour {
	return Colour{R: r, G: g, B: b, A: a}
}

// RGB builds an opaque Colour.
func RGB(r, g, b float64) Colour {
	return Colour{R: r, G: g, B: b, A: 1}
}

func (c Colour) channels() [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}

func fromChannels(ch [4]float64) Colour {
	return Colour{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

func (c Colour) adjusted(f func(i int, v float64) float64) Colour {
	ch := c.channels()
	for i, v := range ch {
		ch[i] = f(i, v)
	}
	return fromChannels(ch)
}

// Alpha scales the alpha channel by s.
func (c Colour) Alpha(s float64) Colour {
	c.A *= s
	return c
}

// Adjust adds n to each of the colour channels.
func (c Colour) Adjust(n float64) Colour {
	return c.adjusted(func(i int, v float64) float64 {
		if i < 3 {
			return v + n
		}
		return v
	})
}

func (c Colour) Lighter(n float64) Colour { return c.Adjust(n) }
func (c Colour) Darker(n float64) Colour  { return c.Adjust(-n) }
func (c Colour) Lighten() Colour          { return c.Lighter(DefaultStep) }
func (c Colour) Darken() Colour           { return c.Darker(DefaultStep) }

// Mono replaces the colour channels with the colour's relative luminance.
func (c Colour) Mono() Colour {
	ch := c.channels()
	var y float64
	for i, w := range luminance {
		y += ch[i] * w
	}
	return Colour{R: y, G: y, B: y, A: c.A}
}

// Mix blends every channel towards o by ratio r. r=0 yields c, r=1 yields o.
func (c Colour) Mix(o Colour, r float64) Colour {
	oc := o.channels()
	return c.adjusted(func(i int, v float64) float64 {
		return v*(1-r) + oc[i]*r
	})
}

// Saturate mixes the monochrome version of c back towards c by ratio r,
// so r<1 desaturates.
func (c Colour) Saturate(r float64) Colour {
	return c.Mono().Mix(c, r)
}

// Clip clamps R, G and B to whole numbers in [0,255] and A to [0,1].
func (c Colour) Clip() Colour {
	return c.adjusted(func(i int, v float64) float64 {
		if i == 3 {
			return clamp(v, 0, 1)
		}
		return math.Floor(clamp(v, 0, 255))
	})
}

// CSS renders the clipped colour as a CSS rgba() value.
func (c Colour) CSS() string {
	ch := c.Clip().channels()
	parts := make([]string, len(ch))
	for i, v := range ch {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "rgba(" + strings.Join(parts, ", ") + ")"
}

// NRGBA converts the clipped colour for image and Gio consumers.
func (c Colour) NRGBA() color.NRGBA {
	cc := c.Clip()
	return color.NRGBA{
		R: uint8(cc.R),
		G: uint8(cc.G),
		B: uint8(cc.B),
		A: uint8(math.Round(cc.A * 255)),
	}
}

// RGBA implements color.Color.
func (c Colour) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

var _ color.Color = Colour{}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
