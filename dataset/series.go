package dataset

import (
	"fmt"
	"sync"
)

// LeafKind distinguishes series of bare samples from series of
// min/max/avg triples.
type LeafKind uint8

const (
	Simple LeafKind = iota
	Complex
)

func (k LeafKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Complex:
		return "complex"
	default:
		return "unknown"
	}
}

// Field selects one component of a Point.
type Field uint8

const (
	Min Field = iota
	Max
	Avg
	numFields
)

func (f Field) String() string {
	switch f {
	case Min:
		return "min"
	case Max:
		return "max"
	case Avg:
		return "avg"
	default:
		return "?"
	}
}

// Point is one sample. Simple samples have Min == Max == Avg.
type Point struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Get returns the selected field.
func (p Point) Get(f Field) float64 {
	switch f {
	case Min:
		return p.Min
	case Max:
		return p.Max
	default:
		return p.Avg
	}
}

// Bounds describes the extent of some data. Len is always the number of
// original samples, regardless of any reduction applied since.
type Bounds struct {
	Min, Max float64
	Len      int
}

// Aggregate combines bounds: the overall min and max and the longest
// length. Bounds with zero length are ignored.
func Aggregate(bs ...Bounds) (Bounds, error) {
	var out Bounds
	found := false
	for _, b := range bs {
		if b.Len == 0 {
			continue
		}
		if !found {
			out = b
			found = true
			continue
		}
		out.Min = min(out.Min, b.Min)
		out.Max = max(out.Max, b.Max)
		out.Len = max(out.Len, b.Len)
	}
	if !found {
		return Bounds{}, ErrEmptyBounds
	}
	return out, nil
}

// Series is a named, ordered sequence of samples. The zero value is not
// usable; construct one with NewSimple, NewComplex or through a Dataset.
type Series struct {
	name    string
	meta    Meta
	kind    LeafKind
	simple  []float64
	complex []Point
	scale   int
	origLen int

	lock      sync.Mutex
	values    [numFields][]float64
	points    []Point
	bounds    *Bounds
	boundsErr error
	half      *Series
}

// NewSimple wraps bare samples. The slice is retained, not copied.
func NewSimple(name string, meta Meta, values []float64) *Series {
	return &Series{
		name:    name,
		meta:    meta,
		kind:    Simple,
		simple:  values,
		scale:   1,
		origLen: len(values),
	}
}

// NewComplex wraps min/max/avg samples. The slice is retained, not copied.
func NewComplex(name string, meta Meta, points []Point) *Series {
	return newReduced(name, meta, points, 1, len(points))
}

func newReduced(name string, meta Meta, points []Point, scale, origLen int) *Series {
	return &Series{
		name:    name,
		meta:    meta,
		kind:    Complex,
		complex: points,
		scale:   scale,
		origLen: origLen,
	}
}

func (s *Series) Name() string    { return s.name }
func (s *Series) Meta() Meta      { return s.meta }
func (s *Series) Kind() LeafKind  { return s.kind }
func (s *Series) IsComplex() bool { return s.kind == Complex }

// Scale is the number of original samples each point represents.
func (s *Series) Scale() int { return s.scale }

// Len is the number of points at the current resolution.
func (s *Series) Len() int {
	if s.kind == Complex {
		return len(s.complex)
	}
	return len(s.simple)
}

// Points returns the samples as triples. Complex series return their
// backing slice; simple series are expanded once and the result is kept.
func (s *Series) Points() []Point {
	if s.kind == Complex {
		return s.complex
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.points == nil {
		s.points = make([]Point, len(s.simple))
		for i, v := range s.simple {
			s.points[i] = Point{Min: v, Max: v, Avg: v}
		}
	}
	return s.points
}

// Values returns one field of every sample as a flat slice. Simple series
// return the same bare samples for every field.
func (s *Series) Values(f Field) []float64 {
	if s.kind == Simple {
		return s.simple
	}
	if f >= numFields {
		f = Avg
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.values[f] == nil {
		vs := make([]float64, len(s.complex))
		for i, p := range s.complex {
			vs[i] = p.Get(f)
		}
		s.values[f] = vs
	}
	return s.values[f]
}

// Bounds returns the min of the mins, the max of the maxes and the
// unreduced sample count. It is computed once.
func (s *Series) Bounds() (Bounds, error) {
	mins := s.Values(Min)
	maxes := s.Values(Max)
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.bounds == nil && s.boundsErr == nil {
		if len(mins) == 0 {
			s.boundsErr = fmt.Errorf("series %q: %w", s.name, ErrEmptyBounds)
		} else {
			b := Bounds{Min: mins[0], Max: maxes[0], Len: s.origLen}
			for i := range mins {
				b.Min = min(b.Min, mins[i])
				b.Max = max(b.Max, maxes[i])
			}
			s.bounds = &b
		}
	}
	if s.boundsErr != nil {
		return Bounds{}, s.boundsErr
	}
	return *s.bounds, nil
}

// EachSeries calls visit once with this series and its path.
func (s *Series) EachSeries(visit func(path []string, s *Series) error, prefix []string) error {
	return visit(joinPath(prefix, s.name), s)
}

func joinPath(prefix []string, name string) []string {
	path := make([]string, 0, len(prefix)+1)
	path = append(path, prefix...)
	return append(path, name)
}
