// Package plot turns datasets into pixel space: it lays out the plot
// area, picks axis ceilings and ticks, builds the data-to-pixel transform
// and drives a Surface through a two-phase render.
package plot

import "git.sr.ht/~whereswaldon/soqview/colour"

// Align is the horizontal anchoring of drawn text.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextMeasurer reports the extents of text as the surface would draw it.
type TextMeasurer interface {
	// MeasureText returns the width of s in pixels.
	MeasureText(s string) float64
	// FontHeight returns the height of one line of text in pixels.
	FontHeight() float64
}

// Surface is an immediate-mode 2D drawing target. Path calls accumulate
// until Fill or Stroke, which consume the current path.
type Surface interface {
	TextMeasurer
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	SetFillStyle(c colour.Colour)
	SetStrokeStyle(c colour.Colour, width float64)
	Fill()
	Stroke()
	FillRect(x, y, w, h float64)
	// FillText draws s with the fill style. y is the vertical centre of
	// the text.
	FillText(s string, x, y float64, align Align)
}

// AlignedX returns the left edge of text of width w anchored at x.
func AlignedX(x, w float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return x - w/2
	case AlignRight:
		return x - w
	default:
		return x
	}
}
