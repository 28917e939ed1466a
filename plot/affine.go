package plot

// Rect is a rectangle in pixel space with its origin at the top left.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Affine is a 2D affine transform in canvas order [a b c d e f]:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Affine struct {
	A, B, C, D, E, F float64
}

// Apply maps a point through the transform.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Offset returns m followed by a translation.
func (m Affine) Offset(dx, dy float64) Affine {
	m.E += dx
	m.F += dy
	return m
}

// Invert returns the inverse transform. ok is false if m is singular.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Affine{}, false
	}
	inv.A = m.D / det
	inv.B = -m.B / det
	inv.C = -m.C / det
	inv.D = m.A / det
	inv.E = (m.C*m.F - m.D*m.E) / det
	inv.F = (m.B*m.E - m.A*m.F) / det
	return inv, true
}
