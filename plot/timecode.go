package plot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadTimecode is returned when a timecode cannot be parsed.
var ErrBadTimecode = errors.New("invalid timecode")

func n2(x int) string {
	if x < 10 {
		return "0" + strconv.Itoa(x)
	}
	return strconv.Itoa(x)
}

// FormatTimecode renders a time in seconds as hh:mm:ss:ff at fps frames
// per second.
func FormatTimecode(seconds, fps float64) string {
	if seconds < 0 {
		seconds = 0
	}
	frames := int(math.Floor(seconds*fps)) % max(int(math.Round(fps)), 1)
	s := int(math.Floor(seconds)) % 60
	m := int(math.Floor(seconds/60)) % 60
	h := int(math.Floor(seconds / 3600))
	return n2(h) + ":" + n2(m) + ":" + n2(s) + ":" + n2(frames)
}

// ParseTimecode converts [[[hh:]mm:]ss:]ff to seconds.
func ParseTimecode(tc string, fps float64) (float64, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("%q at %f fps: %w", tc, fps, ErrBadTimecode)
	}
	parts := strings.Split(strings.TrimSpace(tc), ":")
	if len(parts) > 4 {
		return 0, fmt.Errorf("%q has too many fields: %w", tc, ErrBadTimecode)
	}
	scale := []float64{fps, 60, 60, 24}
	limits := []float64{fps, 60, 60, math.Inf(1)}
	var frames float64
	mult := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		field := len(parts) - 1 - i
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%q field %q: %w", tc, parts[i], ErrBadTimecode)
		}
		if i > 0 && float64(v) >= limits[field] {
			return 0, fmt.Errorf("%q field %q out of range: %w", tc, parts[i], ErrBadTimecode)
		}
		frames += float64(v) * mult
		mult *= scale[field]
	}
	return frames / fps, nil
}
