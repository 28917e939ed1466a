package dataset

// DefaultFPS is the sampling rate assumed when a document does not state
// one.
const DefaultFPS = 25

// Meta is the descriptive block of a document. It is shared, unchanged,
// by every node and series of the dataset it was loaded with.
type Meta map[string]any

// FPS returns the sampling rate in samples per second.
func (m Meta) FPS() float64 {
	for _, key := range []string{"fps", "rate"} {
		if v, ok := m[key].(float64); ok && v > 0 {
			return v
		}
	}
	return DefaultFPS
}

// String returns a descriptive field, or the empty string.
func (m Meta) String(key string) string {
	s, _ := m[key].(string)
	return s
}
