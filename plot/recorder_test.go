package plot

import (
	"fmt"
	"strings"

	"git.sr.ht/~whereswaldon/soqview/colour"
)

// recorder is a Surface that logs every call. Text is 7px per rune and
// 13px high.
type recorder struct {
	ops []string
}

var _ Surface = (*recorder)(nil)

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) MeasureText(s string) float64 { return float64(7 * len([]rune(s))) }
func (r *recorder) FontHeight() float64          { return 13 }
func (r *recorder) BeginPath()                   { r.log("begin") }
func (r *recorder) MoveTo(x, y float64)          { r.log("move %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)          { r.log("line %g %g", x, y) }
func (r *recorder) ClosePath()                   { r.log("close") }
func (r *recorder) SetFillStyle(c colour.Colour) { r.log("setfill %s", c.CSS()) }
func (r *recorder) SetStrokeStyle(c colour.Colour, w float64) {
	r.log("setstroke %s %g", c.CSS(), w)
}
func (r *recorder) Fill()                       { r.log("fill") }
func (r *recorder) Stroke()                     { r.log("stroke") }
func (r *recorder) FillRect(x, y, w, h float64) { r.log("rect %g %g %g %g", x, y, w, h) }
func (r *recorder) FillText(s string, x, y float64, align Align) {
	r.log("text %q %g %g %d", s, x, y, align)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func (r *recorder) index(prefix string) int {
	for i, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			return i
		}
	}
	return -1
}
