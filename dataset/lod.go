package dataset

// Half returns a series with half as many points, each covering two
// points of s: the lower of their mins, the higher of their maxes and the
// mean of their averages. An odd trailing point is carried over as is.
// The result is computed once and the same instance returned thereafter.
func (s *Series) Half() *Series {
	pts := s.Points()
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.half != nil {
		return s.half
	}
	out := make([]Point, 0, (len(pts)+1)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		p0, p1 := pts[i], pts[i+1]
		out = append(out, Point{
			Min: min(p0.Min, p1.Min),
			Max: max(p0.Max, p1.Max),
			Avg: (p0.Avg + p1.Avg) / 2,
		})
	}
	if len(pts)%2 == 1 {
		out = append(out, pts[len(pts)-1])
	}
	s.half = newReduced(s.name, s.meta, out, s.scale*2, s.origLen)
	return s.half
}

// ScaledInstance returns the coarsest reduction of s with no more than
// maxPoints points, or s itself if it already fits. Budgets below one are
// treated as one.
func (s *Series) ScaledInstance(maxPoints int) *Series {
	maxPoints = max(maxPoints, 1)
	cur := s
	for cur.Len() > maxPoints {
		cur = cur.Half()
	}
	return cur
}
