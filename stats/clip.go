package stats

import (
	"math"

	"github.com/arloliu/fitsio/internal/options"
)

// Float32Epsilon is the machine epsilon of float32, used as the equality tolerance
// for bad pixel values and for header write suppression.
const Float32Epsilon = 1.1920929e-07

// SigmaClip estimates the standard deviation of buf with iterative 3-sigma clipping.
//
// The first iteration uses every sample. Each following iteration keeps only the
// samples within 3 sigma of the previous iteration's mean. At least one iteration
// runs. An empty buffer yields 0.
func SigmaClip[T Number](buf []T, iterations int, opts ...ClipOption) float64 {
	cfg := defaultClipConfig()
	_ = options.Apply(cfg, opts...)

	iterations = max(iterations, 1)
	if cfg.robust {
		return robustClip(buf, iterations, cfg)
	}

	var mean, sigma, limit float64
	for it := range iterations {
		var s0, s1, s2 float64
		for _, v := range buf {
			x := float64(v)
			if !cfg.accept(x) || (it > 0 && math.Abs(x-mean) >= limit) {
				continue
			}
			s0++
			s1 += x
			s2 += x * x
		}
		if s0 == 0 {
			s0 = 1
		}

		if cfg.subtractMean {
			mean = s1 / s0
			sigma = math.Sqrt(max(0, s2/s0-mean*mean))
		} else {
			sigma = math.Sqrt(s2 / s0)
		}
		limit = 3 * sigma
	}

	return sigma
}

func robustClip[T Number](buf []T, iterations int, cfg *ClipConfig) float64 {
	var mean, sigma, limit float64
	for it := range iterations {
		keep := func(x float64) bool {
			return cfg.accept(x) && (it == 0 || math.Abs(x-mean) < limit)
		}

		var s0, s1 float64
		for _, v := range buf {
			if x := float64(v); keep(x) {
				s0++
				s1 += x
			}
		}
		if s0 == 0 {
			s0 = 1
		}
		s1 /= s0

		var s2 float64
		for _, v := range buf {
			if x := float64(v); keep(x) {
				d := x - s1
				s2 += d * d
			}
		}

		mean = s1
		sigma = math.Sqrt(max(0, s2/s0))
		limit = 3 * sigma
	}

	return sigma
}

func (cfg *ClipConfig) accept(x float64) bool {
	return !cfg.useBadPixel || math.Abs(x-cfg.badPixel) > Float32Epsilon
}
