package main

import (
	"fmt"
	"image"
	"log"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/soqview/colour"
	"git.sr.ht/~whereswaldon/soqview/plot"
)

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// ChartWidget lays out a plot.Chart and turns horizontal drags across it
// into region selections.
type ChartWidget struct {
	Chart  *plot.Chart
	drag   plot.DragSelect
	widths map[string]float64

	// plotArea is where the last frame drew data; drags start only there.
	plotArea plot.Rect

	// Selected is the last selected sample range.
	Selected    [2]int
	HasSelected bool
}

func NewChartWidget() *ChartWidget {
	cw := &ChartWidget{
		Chart:  plot.New(0, 0),
		widths: map[string]float64{},
	}
	cw.Chart.OnRegionSelected = func(start, end int) {
		fps := cw.Chart.Options().FPS
		log.Printf("selected samples %d-%d (%s - %s)", start, end,
			plot.FormatTimecode(float64(start)/fps, fps),
			plot.FormatTimecode(float64(end)/fps, fps))
	}
	return cw
}

// Update processes pointer input and reports whether a region was
// selected this frame.
func (cw *ChartWidget) Update(gtx C) bool {
	selected := false
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: cw,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x := float64(e.Position.X)
		switch e.Kind {
		case pointer.Press:
			if cw.plotArea.Contains(x, float64(e.Position.Y)) {
				cw.drag.Press(x)
			}
		case pointer.Drag:
			cw.drag.Drag(x)
		case pointer.Release:
			start, end, ok, err := cw.drag.Release(cw.Chart, x)
			if err != nil {
				log.Printf("failed selecting region: %v", err)
			} else if ok {
				cw.Selected = [2]int{start, end}
				cw.HasSelected = true
				selected = true
			}
		case pointer.Cancel:
			cw.drag.Cancel()
		}
	}
	return selected
}

func (cw *ChartWidget) Layout(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	cw.Chart.SetSize(float64(size.X), float64(size.Y))
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, cw)

	surface := newGioSurface(gtx, th, cw.widths)
	if err := cw.Chart.Render(surface); err != nil {
		cw.plotArea = plot.Rect{}
		paint.FillShape(gtx.Ops, colour.Background.NRGBA(), clip.Rect{Max: size}.Op())
		l := material.Body1(th, fmt.Sprintf("Nothing to plot: %v", err))
		l.Alignment = text.Middle
		return layout.Center.Layout(gtx, l.Layout)
	}
	l, err := cw.Chart.Layout(surface)
	if err != nil {
		cw.plotArea = plot.Rect{}
		return D{Size: size}
	}
	pa := l.PlotArea
	cw.plotArea = pa
	if x0, x1, active := cw.drag.Span(); active {
		x0 = clamp(x0, pa.X, pa.Right())
		x1 = clamp(x1, pa.X, pa.Right())
		if x1 > x0 {
			r := image.Rect(int(x0), int(pa.Y), int(math.Ceil(x1)), int(math.Ceil(pa.Bottom())))
			paint.FillShape(gtx.Ops, selectionColour.NRGBA(), clip.Rect(r).Op())
		}
	}
	return D{Size: size}
}
