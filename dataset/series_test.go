package dataset

import (
	"errors"
	"math"
	"testing"
)

func makeComplex(n int) *Series {
	pts := make([]Point, n)
	for i := range pts {
		avg := 30 + 10*math.Sin(float64(i)/7)
		spread := float64(i%13) / 2
		pts[i] = Point{Min: avg - spread, Max: avg + spread, Avg: avg}
	}
	// Single spikes that naive sub-sampling would lose.
	if n > 10 {
		pts[n/3].Max = 99
		pts[n/2+1].Min = -5
	}
	return NewComplex("complex", nil, pts)
}

func makeSimple(n int) *Series {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = float64((i * 37) % 101)
	}
	return NewSimple("simple", nil, vs)
}

func TestSeriesPoints(t *testing.T) {
	s := NewSimple("s", nil, []float64{3, 1, 2})
	if s.IsComplex() {
		t.Errorf("bare samples should make a simple series")
	}
	for _, f := range []Field{Min, Max, Avg} {
		vs := s.Values(f)
		if len(vs) != 3 || vs[0] != 3 || vs[1] != 1 || vs[2] != 2 {
			t.Errorf("simple series should yield bare values for %s, got %v", f, vs)
		}
	}
	pts := s.Points()
	if pts[1] != (Point{Min: 1, Max: 1, Avg: 1}) {
		t.Errorf("expected expanded point, got %v", pts[1])
	}
	if &s.Points()[0] != &pts[0] {
		t.Errorf("expanded points should be computed once")
	}

	c := NewComplex("c", nil, []Point{{Min: 1, Max: 5, Avg: 2}, {Min: 0, Max: 3, Avg: 1}})
	if !c.IsComplex() {
		t.Errorf("triples should make a complex series")
	}
	mins := c.Values(Min)
	if mins[0] != 1 || mins[1] != 0 {
		t.Errorf("unexpected mins %v", mins)
	}
	if &c.Values(Min)[0] != &mins[0] {
		t.Errorf("projected values should be computed once")
	}
	if maxes := c.Values(Max); maxes[0] != 5 || maxes[1] != 3 {
		t.Errorf("unexpected maxes %v", maxes)
	}
}

func TestSeriesBounds(t *testing.T) {
	c := NewComplex("c", nil, []Point{{Min: 1, Max: 5, Avg: 2}, {Min: 0, Max: 3, Avg: 1}, {Min: 2, Max: 2, Avg: 2}})
	b, err := c.Bounds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != (Bounds{Min: 0, Max: 5, Len: 3}) {
		t.Errorf("unexpected bounds %+v", b)
	}
	_, err = NewSimple("empty", nil, nil).Bounds()
	if !errors.Is(err, ErrEmptyBounds) {
		t.Errorf("expected ErrEmptyBounds, got %v", err)
	}
}

func TestEnvelopeConservation(t *testing.T) {
	for _, s := range []*Series{makeComplex(1601), makeSimple(999), makeComplex(2)} {
		want, err := s.Bounds()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cur := s
		for step := 0; step < 12; step++ {
			cur = cur.Half()
			got, err := cur.Bounds()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("%s step %d: expected bounds %+v, got %+v", s.Name(), step, want, got)
			}
		}
	}
}

func TestHalving(t *testing.T) {
	s := makeComplex(11)
	h := s.Half()
	if h.Len() != 6 {
		t.Errorf("expected ceil(11/2)=6 points, got %d", h.Len())
	}
	if h.Scale() != 2 || h.Name() != s.Name() {
		t.Errorf("expected scale 2 and name %q, got %d %q", s.Name(), h.Scale(), h.Name())
	}
	p0, p1 := s.Points()[0], s.Points()[1]
	expected := Point{Min: min(p0.Min, p1.Min), Max: max(p0.Max, p1.Max), Avg: (p0.Avg + p1.Avg) / 2}
	if h.Points()[0] != expected {
		t.Errorf("expected first pair %v, got %v", expected, h.Points()[0])
	}
	if last := h.Points()[5]; last != s.Points()[10] {
		t.Errorf("odd trailing point should pass through, got %v", last)
	}
	if s.Half() != h {
		t.Errorf("half-scale series should be memoised")
	}
	if s.Len() != 11 || s.Scale() != 1 {
		t.Errorf("halving must not modify the original")
	}

	one := NewSimple("one", nil, []float64{4})
	cur := one
	for k := 1; k <= 3; k++ {
		cur = cur.Half()
		if cur.Len() != 1 {
			t.Errorf("reducing a single point should keep one point, got %d", cur.Len())
		}
		if cur.Scale() != 1<<k {
			t.Errorf("expected scale %d after %d reductions, got %d", 1<<k, k, cur.Scale())
		}
	}
}

func TestScaleDoubling(t *testing.T) {
	cur := makeSimple(1000)
	for k := 0; k < 8; k++ {
		if cur.Scale() != 1<<k {
			t.Errorf("expected scale %d after %d reductions, got %d", 1<<k, k, cur.Scale())
		}
		cur = cur.Half()
	}
}

func TestScaledInstance(t *testing.T) {
	type testcase struct {
		n, budget int
		expectLen int
		steps     int
	}
	for _, tc := range []testcase{
		{n: 1600, budget: 100, expectLen: 100, steps: 4},
		{n: 1601, budget: 100, expectLen: 51, steps: 5},
		{n: 50, budget: 100, expectLen: 50, steps: 0},
		{n: 100, budget: 100, expectLen: 100, steps: 0},
		{n: 7, budget: 0, expectLen: 1, steps: 3},
		{n: 7, budget: -3, expectLen: 1, steps: 3},
	} {
		s := makeComplex(tc.n)
		got := s.ScaledInstance(tc.budget)
		steps := 0
		for sc := got.Scale(); sc > 1; sc /= 2 {
			steps++
		}
		budget := max(tc.budget, 1)
		if got.Len() > budget || got.Len() != tc.expectLen {
			t.Errorf("n=%d budget=%d: expected %d points, got %d", tc.n, tc.budget, tc.expectLen, got.Len())
		}
		if steps != tc.steps {
			t.Errorf("n=%d budget=%d: expected %d steps, took %d", tc.n, tc.budget, tc.steps, steps)
		}
		if tc.steps == 0 && got != s {
			t.Errorf("n=%d budget=%d: series within budget should be returned unchanged", tc.n, tc.budget)
		}
		if limit := math.Ceil(math.Log2(float64(tc.n) / float64(budget))); tc.steps > 0 && float64(steps) > limit {
			t.Errorf("n=%d budget=%d: %d steps exceeds ceil(log2(N/max))=%f", tc.n, tc.budget, steps, limit)
		}
		if s.ScaledInstance(tc.budget) != got {
			t.Errorf("n=%d budget=%d: repeated reduction should return the same instance", tc.n, tc.budget)
		}
	}

	empty := NewSimple("empty", nil, nil)
	if empty.ScaledInstance(0) != empty {
		t.Errorf("empty series should return itself")
	}
}
