package plot

import (
	"math"
	"testing"
)

func TestNiceCeiling(t *testing.T) {
	for _, tc := range []struct {
		in, expected float64
	}{
		{in: 7, expected: 10},
		{in: 0, expected: 0.001},
		{in: -4, expected: 0.001},
		{in: 0.001, expected: 0.001},
		{in: 0.0011, expected: 0.002},
		{in: 1, expected: 1},
		{in: 1.5, expected: 2},
		{in: 2.1, expected: 5},
		{in: 10, expected: 10},
		{in: 11, expected: 20},
		{in: 48.3, expected: 50},
		{in: 51, expected: 100},
		{in: 123456, expected: 200000},
	} {
		if got := NiceCeiling(tc.in); got != tc.expected {
			t.Errorf("NiceCeiling(%g): expected %g, got %g", tc.in, tc.expected, got)
		}
	}
}

func TestNiceCeilingProperties(t *testing.T) {
	for x := 0.0003; x < 1e7; x *= 1.37 {
		n := NiceCeiling(x)
		if n < x {
			t.Errorf("NiceCeiling(%g)=%g is below its input", x, n)
		}
		if NiceCeiling(n) != n {
			t.Errorf("NiceCeiling is not idempotent at %g: %g then %g", x, n, NiceCeiling(n))
		}
		if n > 2.5*x && x > 0.001 {
			t.Errorf("NiceCeiling(%g)=%g is not the smallest member", x, n)
		}
	}
	if !math.IsInf(NiceCeiling(math.Inf(1)), 1) || !math.IsNaN(NiceCeiling(math.NaN())) {
		t.Errorf("non-finite input should pass through")
	}
}

func TestAffineInvert(t *testing.T) {
	m := Affine{A: 2, D: -3, E: 10, F: 200}
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible transform")
	}
	x, y := m.Apply(7, 11)
	bx, by := inv.Apply(x, y)
	if math.Abs(bx-7) > 1e-9 || math.Abs(by-11) > 1e-9 {
		t.Errorf("round trip gave %g,%g", bx, by)
	}
	if _, ok := (Affine{A: 1}).Invert(); ok {
		t.Errorf("singular transform should not invert")
	}
	ox, oy := m.Offset(0.5, 0.5).Apply(0, 0)
	if ox != 10.5 || oy != 200.5 {
		t.Errorf("unexpected offset result %g,%g", ox, oy)
	}
}
