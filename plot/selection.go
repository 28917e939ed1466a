package plot

// DragSelect tracks a horizontal drag across a chart and reports the
// selected region when the drag ends.
type DragSelect struct {
	active     bool
	start, cur float64
}

// Press starts a drag at pixel x.
func (d *DragSelect) Press(x float64) {
	d.active = true
	d.start, d.cur = x, x
}

// Drag moves the end of an active drag.
func (d *DragSelect) Drag(x float64) {
	if d.active {
		d.cur = x
	}
}

// Cancel abandons the drag without selecting anything.
func (d *DragSelect) Cancel() {
	d.active = false
}

// Span returns the pixel extent of an active drag, ordered.
func (d *DragSelect) Span() (x0, x1 float64, active bool) {
	x0, x1 = d.start, d.cur
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	return x0, x1, d.active
}

// Release ends the drag at pixel x and selects the region on c. Drags
// with no extent select nothing.
func (d *DragSelect) Release(c *Chart, x float64) (start, end int, ok bool, err error) {
	if !d.active {
		return 0, 0, false, nil
	}
	d.active = false
	d.cur = x
	if d.cur == d.start {
		return 0, 0, false, nil
	}
	start, end, err = c.SelectRegion(d.start, d.cur)
	if err != nil {
		return 0, 0, false, err
	}
	return start, end, true, nil
}
