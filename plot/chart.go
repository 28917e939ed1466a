package plot

import (
	"errors"
	"fmt"
	"math"

	"git.sr.ht/~whereswaldon/soqview/colour"
	"git.sr.ht/~whereswaldon/soqview/dataset"
)

var (
	ErrUnknownHandle = errors.New("unknown series handle")
	ErrNoSeries      = errors.New("no series to plot")
	ErrNotLaidOut    = errors.New("chart has not been laid out")
)

// Handle identifies a series added to a Chart.
type Handle int

// Entry is a series as the chart holds it.
type Entry struct {
	Handle  Handle
	Series  *dataset.Series
	Opacity float64
	Colour  colour.Colour
}

// Chart is the state of one chart widget. It is not safe for concurrent
// use.
type Chart struct {
	width, height float64
	opts          Options
	entries       []Entry
	layout        *Layout

	// OnRegionSelected, if set, is called by SelectRegion with the
	// selected range in samples.
	OnRegionSelected func(start, end int)
}

// New returns an empty chart for a canvas of the given size.
func New(width, height float64) *Chart {
	c := &Chart{width: width, height: height}
	c.Reset(DefaultOptions())
	return c
}

// Reset removes every series and applies opts.
func (c *Chart) Reset(opts Options) {
	c.opts = opts.withDefaults()
	c.entries = nil
	c.layout = nil
}

// SetSize changes the canvas size.
func (c *Chart) SetSize(width, height float64) {
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.layout = nil
}

func (c *Chart) Size() (width, height float64) { return c.width, c.height }
func (c *Chart) Options() Options              { return c.opts }

// AddSeries adds s, fully opaque. The most recently added series is the
// primary one and is drawn last.
func (c *Chart) AddSeries(s *dataset.Series) Handle {
	h := Handle(len(c.entries))
	c.entries = append(c.entries, Entry{
		Handle:  h,
		Series:  s,
		Opacity: 1,
		Colour:  colour.Palette(int(h)),
	})
	c.layout = nil
	return h
}

// SetVisibility sets the opacity of a series. Zero hides it.
func (c *Chart) SetVisibility(h Handle, opacity float64) error {
	if h < 0 || int(h) >= len(c.entries) {
		return fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
	}
	c.entries[h].Opacity = math.Max(0, math.Min(1, opacity))
	return nil
}

// Entries returns the series in the order they were added.
func (c *Chart) Entries() []Entry {
	return c.entries
}

// Bounds aggregates the bounds of every added series, visible or not.
func (c *Chart) Bounds() (dataset.Bounds, error) {
	if len(c.entries) == 0 {
		return dataset.Bounds{}, ErrNoSeries
	}
	bs := make([]dataset.Bounds, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Series.Len() == 0 {
			continue
		}
		b, err := e.Series.Bounds()
		if err != nil {
			return dataset.Bounds{}, err
		}
		bs = append(bs, b)
	}
	return dataset.Aggregate(bs...)
}

// Layout returns the chart's layout, computing it with m on first use
// after a reset, resize or series addition.
func (c *Chart) Layout(m TextMeasurer) (Layout, error) {
	if c.layout != nil {
		return *c.layout, nil
	}
	b, err := c.Bounds()
	if err != nil {
		return Layout{}, err
	}
	l, err := ComputeLayout(m, c.width, c.height, b, c.opts)
	if err != nil {
		return Layout{}, err
	}
	c.layout = &l
	return l, nil
}

// Budget is the largest number of points drawn per series.
func (c *Chart) Budget() int {
	return max(int(c.width/c.opts.PixelsPerPoint), 1)
}

// Foreground is returned by RenderBackground and must be passed to the
// later phases of the same render.
type Foreground struct {
	layout Layout
}

// Layout returns the layout the render is using.
func (f Foreground) Layout() Layout { return f.layout }

// Render draws the whole chart.
func (c *Chart) Render(s Surface) error {
	fg, err := c.RenderBackground(s)
	if err != nil {
		return err
	}
	c.DrawSeries(s, fg)
	c.RenderForeground(s, fg)
	return nil
}

// crisp moves a pixel coordinate onto the centre of its pixel, so one
// pixel wide strokes cover exactly one row or column.
func crisp(v float64) float64 {
	return math.Floor(v) + 0.5
}

// RenderBackground clears the canvas and draws the plot backdrop and
// grid.
func (c *Chart) RenderBackground(s Surface) (Foreground, error) {
	l, err := c.Layout(s)
	if err != nil {
		return Foreground{}, err
	}
	pa := l.PlotArea
	s.SetFillStyle(colour.Background)
	s.FillRect(0, 0, l.Width, l.Height)
	s.SetFillStyle(colour.White)
	s.FillRect(pa.X, pa.Y, pa.W, pa.H)

	s.BeginPath()
	for i, t := range l.YTicks {
		if i == 0 {
			continue
		}
		y := crisp(t.Pos)
		s.MoveTo(pa.X, y)
		s.LineTo(pa.Right(), y)
	}
	s.SetStrokeStyle(colour.GridMajor, 1)
	s.Stroke()

	s.BeginPath()
	for i, t := range l.XTicks {
		if i == 0 {
			continue
		}
		x := crisp(t.Pos)
		s.MoveTo(x, pa.Y)
		s.LineTo(x, pa.Bottom())
	}
	s.SetStrokeStyle(colour.Grid, 1)
	s.Stroke()
	return Foreground{layout: l}, nil
}

// DrawSeries draws every visible series, reduced to the point budget.
func (c *Chart) DrawSeries(s Surface, fg Foreground) {
	m := fg.layout.Transform.Offset(0.5, 0.5)
	budget := c.Budget()
	for i, e := range c.entries {
		if e.Opacity <= 0 || e.Series.Len() == 0 {
			continue
		}
		primary := i == len(c.entries)-1
		drawSeries(s, m, e.Series.ScaledInstance(budget), e.Colour, e.Opacity, primary)
	}
}

func drawSeries(s Surface, m Affine, r *dataset.Series, base colour.Colour, opacity float64, primary bool) {
	scale := float64(r.Scale())
	if r.IsComplex() {
		pts := r.Points()
		s.BeginPath()
		for i, p := range pts {
			x, y := m.Apply(float64(i)*scale, p.Max)
			if i == 0 {
				s.MoveTo(x, y)
			} else {
				s.LineTo(x, y)
			}
		}
		for i := len(pts) - 1; i >= 0; i-- {
			x, y := m.Apply(float64(i)*scale, pts[i].Min)
			s.LineTo(x, y)
		}
		s.ClosePath()
		s.SetFillStyle(base.Lighter(64).Alpha(0.35 * opacity))
		s.Fill()
	}
	s.BeginPath()
	for i, v := range r.Values(dataset.Avg) {
		x, y := m.Apply(float64(i)*scale, v)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	width := 1.0
	if primary {
		width = 1.5
	}
	s.SetStrokeStyle(base.Alpha(opacity), width)
	s.Stroke()
}

// RenderForeground draws the axes and tick labels over the data.
func (c *Chart) RenderForeground(s Surface, fg Foreground) {
	l := fg.layout
	pa := l.PlotArea
	pad := c.opts.Padding
	const tickLen = 4

	left := crisp(pa.X)
	bottom := crisp(pa.Bottom())
	s.BeginPath()
	s.MoveTo(left, pa.Y)
	s.LineTo(left, bottom)
	s.LineTo(pa.Right(), bottom)
	for _, t := range l.YTicks {
		y := crisp(t.Pos)
		s.MoveTo(left-tickLen, y)
		s.LineTo(left, y)
	}
	for _, t := range l.XTicks {
		x := crisp(t.Pos)
		s.MoveTo(x, bottom)
		s.LineTo(x, bottom+tickLen)
	}
	s.SetStrokeStyle(colour.Black, 1)
	s.Stroke()

	s.SetFillStyle(colour.Black)
	for _, t := range l.YTicks {
		s.FillText(t.Label, pa.X-pad, t.Pos, AlignRight)
	}
	labelY := pa.Bottom() + pad + s.FontHeight()/2
	for _, t := range l.XTicks {
		s.FillText(t.Label, t.Pos, labelY, AlignCenter)
	}
}

// SelectRegion converts a horizontal pixel span into an inclusive sample
// range using the current layout, and reports it to OnRegionSelected.
func (c *Chart) SelectRegion(px0, px1 float64) (start, end int, err error) {
	if c.layout == nil {
		return 0, 0, ErrNotLaidOut
	}
	x0, ok0 := c.layout.SampleAt(px0)
	x1, ok1 := c.layout.SampleAt(px1)
	if !ok0 || !ok1 {
		return 0, 0, fmt.Errorf("singular transform: %w", ErrNotLaidOut)
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	// Both ends are sample indices, so the right edge maps to the last
	// sample rather than one past it.
	last := max(int(c.layout.Extent.X)-1, 0)
	start = min(int(math.Round(x0)), last)
	end = min(int(math.Round(x1)), last)
	if c.OnRegionSelected != nil {
		c.OnRegionSelected(start, end)
	}
	return start, end, nil
}
