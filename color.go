package main

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/soqview/colour"
)

var (
	selectionColour = colour.Palette(0).Alpha(0.2)
	// headerColour fills the legend header row.
	headerColour = colour.Palette(0).Darker(32)
	errorColour  = colour.RGB(150, 0, 0)
)

// swatch returns the legend colour of a series, faded like the series
// itself.
func swatch(c colour.Colour, opacity float64) color.NRGBA {
	return c.Alpha(math.Max(opacity, 0.15)).NRGBA()
}
