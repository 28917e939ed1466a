package plot

import (
	"fmt"
	"math"
	"strconv"

	"git.sr.ht/~whereswaldon/soqview/dataset"
	"github.com/aclements/go-moremath/vec"
)

// Options configure a chart. Zero fields take their defaults.
type Options struct {
	// FPS is the sampling rate, used only to label the time axis.
	FPS float64
	// Padding is the gap in pixels around axis labels.
	Padding float64
	// PixelsPerPoint sets the point budget: canvas width divided by this.
	PixelsPerPoint float64
	// TickSpacing is the approximate vertical distance between Y ticks.
	TickSpacing float64
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		FPS:            dataset.DefaultFPS,
		Padding:        6,
		PixelsPerPoint: 4,
		TickSpacing:    40,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.FPS <= 0 {
		o.FPS = d.FPS
	}
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	if o.PixelsPerPoint <= 0 {
		o.PixelsPerPoint = d.PixelsPerPoint
	}
	if o.TickSpacing <= 0 {
		o.TickSpacing = d.TickSpacing
	}
	return o
}

// Extent is the span of data shown on each axis, both starting at zero.
type Extent struct {
	X, Y float64
}

// Tick is an axis division. Pos is its pixel coordinate along the axis.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Layout is everything needed to place data and decoration on a canvas.
type Layout struct {
	Width, Height float64
	PlotArea      Rect
	Extent        Extent
	Bounds        dataset.Bounds
	// Transform maps (sample index, value) to pixels.
	Transform Affine
	XTicks    []Tick
	YTicks    []Tick
	FPS       float64
}

// ComputeLayout derives the plot area, axis extents, ticks and transform
// for data with bounds b drawn on a width x height canvas. Label widths
// are measured with m so the insets fit the labels actually drawn.
func ComputeLayout(m TextMeasurer, width, height float64, b dataset.Bounds, opts Options) (Layout, error) {
	if b.Len == 0 {
		return Layout{}, fmt.Errorf("cannot lay out chart: %w", dataset.ErrEmptyBounds)
	}
	opts = opts.withDefaults()
	l := Layout{
		Width:  width,
		Height: height,
		Bounds: b,
		Extent: Extent{X: float64(b.Len), Y: NiceCeiling(b.Max)},
		FPS:    opts.FPS,
	}
	pad := opts.Padding
	fh := m.FontHeight()

	top := fh/2 + pad
	bottom := fh + 2*pad
	plotH := max(height-top-bottom, 1)

	yValues := yTickValues(plotH, l.Extent.Y, opts.TickSpacing)
	yLabels := make([]string, len(yValues))
	widestY := 0.0
	for i, v := range yValues {
		yLabels[i] = FormatValue(v)
		widestY = max(widestY, m.MeasureText(yLabels[i]))
	}
	timeLabelW := m.MeasureText(l.timeLabel(l.Extent.X))

	left := widestY + 2*pad
	right := timeLabelW/2 + pad
	plotW := max(width-left-right, 1)

	l.PlotArea = Rect{X: left, Y: top, W: plotW, H: plotH}
	l.Transform = Affine{
		A: plotW / l.Extent.X,
		D: -plotH / l.Extent.Y,
		E: left,
		F: top + plotH,
	}

	for i, v := range yValues {
		_, y := l.Transform.Apply(0, v)
		l.YTicks = append(l.YTicks, Tick{Value: v, Pos: y, Label: yLabels[i]})
	}

	pxStep := 2 * timeLabelW
	if pxStep <= 0 {
		pxStep = opts.TickSpacing
	}
	step := max(NiceCeiling(pxStep/l.Transform.A), 1)
	for i := 0; float64(i)*step <= l.Extent.X; i++ {
		v := float64(i) * step
		x, _ := l.Transform.Apply(v, 0)
		l.XTicks = append(l.XTicks, Tick{Value: v, Pos: x, Label: l.timeLabel(v)})
	}
	return l, nil
}

func yTickValues(plotH, ceiling, spacing float64) []float64 {
	count := max(math.Floor(NiceCeiling(plotH/spacing)), 1)
	return vec.Linspace(0, ceiling, int(count)+1)
}

func (l Layout) timeLabel(sample float64) string {
	return FormatTimecode(sample/l.FPS, l.FPS)
}

// FormatValue renders an axis value compactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// SampleAt maps a pixel X coordinate back to a sample index, clamped to
// the X extent.
func (l Layout) SampleAt(px float64) (float64, bool) {
	inv, ok := l.Transform.Invert()
	if !ok {
		return 0, false
	}
	x, _ := inv.Apply(px, l.PlotArea.Y)
	return math.Max(0, math.Min(l.Extent.X, x)), true
}
