// Package stats provides the numeric reductions used for diagnostics over decoded
// data sections: the first four moments with extrema, skewness and kurtosis,
// iterative sigma clipping and histogram entropy.
//
// All functions are pure: they take a flat buffer and never modify it.
//
//	s, err := stats.Summarize(pixels)
//	if err != nil {
//	    return err
//	}
//	noise := stats.SigmaClip(pixels, 3)
package stats
