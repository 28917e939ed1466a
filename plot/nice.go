package plot

import "math"

// niceMantissas is the cycle produced by multiplying by 2, 2.5 and 2 in
// turn, starting from 0.001.
var niceMantissas = [...]float64{1, 2, 5}

const niceFirstExponent = -3

// NiceCeiling returns the smallest value of the sequence 0.001, 0.002,
// 0.005, 0.01, 0.02, ... that is not less than n. NaN and infinite inputs
// are returned unchanged.
func NiceCeiling(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	for k := 0; ; k++ {
		v := niceMantissas[k%len(niceMantissas)] * math.Pow10(niceFirstExponent+k/len(niceMantissas))
		if v >= n || math.IsInf(v, 1) {
			return v
		}
	}
}
