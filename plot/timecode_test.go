package plot

import (
	"errors"
	"math"
	"testing"
)

func TestFormatTimecode(t *testing.T) {
	for _, tc := range []struct {
		seconds, fps float64
		expected     string
	}{
		{seconds: 0, fps: 25, expected: "00:00:00:00"},
		{seconds: 1.52, fps: 25, expected: "00:00:01:13"},
		{seconds: 3725.5, fps: 30, expected: "01:02:05:15"},
		{seconds: -3, fps: 25, expected: "00:00:00:00"},
	} {
		if got := FormatTimecode(tc.seconds, tc.fps); got != tc.expected {
			t.Errorf("FormatTimecode(%g, %g): expected %q, got %q", tc.seconds, tc.fps, tc.expected, got)
		}
	}
}

func TestParseTimecode(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected float64
	}{
		{in: "01:02:05:15", expected: 3725.5},
		{in: "05:15", expected: 5.5},
		{in: "12", expected: 0.4},
		{in: "90:00:00", expected: 5400},
	} {
		got, err := ParseTimecode(tc.in, 30)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
		} else if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("%q: expected %g, got %g", tc.in, tc.expected, got)
		}
	}
	for _, bad := range []string{"", "aa:00", "00:61:00", "1:2:3:4:5", "00:00:-1", "00:00:00:30"} {
		if _, err := ParseTimecode(bad, 30); !errors.Is(err, ErrBadTimecode) {
			t.Errorf("%q: expected ErrBadTimecode, got %v", bad, err)
		}
	}
	s := 4321.0 / 32
	if got, _ := ParseTimecode(FormatTimecode(s, 32), 32); math.Abs(got-s) > 1e-9 {
		t.Errorf("round trip gave %g for %g", got, s)
	}
}
