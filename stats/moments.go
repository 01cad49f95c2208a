package stats

import (
	"errors"
	"math"
)

// ErrEmpty is returned when a reduction is asked for over an empty buffer.
var ErrEmpty = errors.New("stats: empty buffer")

// Number is the set of element types the reductions accept.
type Number interface {
	~float32 | ~float64 | ~int32
}

// Summary holds the moment based description of a buffer.
type Summary struct {
	Count    int
	Mean     float64
	Sigma    float64 // population standard deviation
	Skewness float64 // third standardized moment, 0 when Sigma is 0
	Kurtosis float64 // excess kurtosis, 0 when Sigma is 0
	Min      float64
	Max      float64
}

// Summarize computes mean, sigma, skewness, kurtosis and extrema in two passes:
// the mean and extrema first, then the central moments around the mean.
func Summarize[T Number](buf []T) (Summary, error) {
	if len(buf) == 0 {
		return Summary{}, ErrEmpty
	}

	s := Summary{Count: len(buf), Min: float64(buf[0]), Max: float64(buf[0])}
	var sum float64
	for _, v := range buf {
		x := float64(v)
		sum += x
		s.Min = min(s.Min, x)
		s.Max = max(s.Max, x)
	}

	n := float64(len(buf))
	s.Mean = sum / n

	var m2, m3, m4 float64
	for _, v := range buf {
		d := float64(v) - s.Mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n

	if m2 > 0 {
		s.Sigma = math.Sqrt(m2)
		s.Skewness = m3 / (m2 * s.Sigma)
		s.Kurtosis = m4/(m2*m2) - 3
	}

	return s, nil
}

// MinMax returns the smallest and largest values of buf.
func MinMax[T Number](buf []T) (float64, float64, error) {
	if len(buf) == 0 {
		return 0, 0, ErrEmpty
	}

	lo, hi := float64(buf[0]), float64(buf[0])
	for _, v := range buf[1:] {
		lo = min(lo, float64(v))
		hi = max(hi, float64(v))
	}

	return lo, hi, nil
}

// Skewness returns the third standardized moment computed from raw power sums.
// It returns 0 for an empty or constant buffer.
func Skewness[T Number](buf []T) float64 {
	x1, x2, x3, _ := rawMoments(buf)
	variance := x2 - x1*x1
	if len(buf) == 0 || variance <= 0 {
		return 0
	}

	sigma := math.Sqrt(variance)

	return (x3 - 3*x1*x2 + 2*x1*x1*x1) / (sigma * sigma * sigma)
}

// Kurtosis returns the excess kurtosis computed from raw power sums.
// It returns 0 for an empty or constant buffer.
func Kurtosis[T Number](buf []T) float64 {
	x1, x2, x3, x4 := rawMoments(buf)
	variance := x2 - x1*x1
	if len(buf) == 0 || variance <= 0 {
		return 0
	}

	x1sq := x1 * x1

	return (x4-4*x1*x3+6*x2*x1sq-3*x1sq*x1sq)/(variance*variance) - 3
}

// rawMoments returns the means of x, x^2, x^3 and x^4.
func rawMoments[T Number](buf []T) (float64, float64, float64, float64) {
	if len(buf) == 0 {
		return 0, 0, 0, 0
	}

	var x1, x2, x3, x4 float64
	for _, v := range buf {
		x := float64(v)
		xx := x * x
		x1 += x
		x2 += xx
		x3 += xx * x
		x4 += xx * xx
	}
	n := float64(len(buf))

	return x1 / n, x2 / n, x3 / n, x4 / n
}
