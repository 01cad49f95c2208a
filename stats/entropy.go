package stats

import (
	"fmt"
	"math"
)

// Entropy returns the Shannon entropy, in bits, of the histogram of buf with bins
// of width step starting at the buffer minimum.
//
// The histogram has floor((max-min)/step)+1 bins so that the maximum always falls
// in the last bin.
func Entropy[T Number](buf []T, step float64) (float64, error) {
	if step <= 0 || math.IsNaN(step) {
		return 0, fmt.Errorf("stats: histogram step %v must be positive", step)
	}

	lo, hi, err := MinMax(buf)
	if err != nil {
		return 0, err
	}

	bins := make([]int, int((hi-lo)/step)+1)
	for _, v := range buf {
		i := min(int((float64(v)-lo)/step), len(bins)-1)
		bins[i]++
	}

	n := float64(len(buf))
	var h float64
	for _, c := range bins {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}

	return h, nil
}
