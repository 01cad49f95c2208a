package stats

import "github.com/arloliu/fitsio/internal/options"

// ClipConfig holds the sigma clipping parameters.
type ClipConfig struct {
	subtractMean bool
	robust       bool
	useBadPixel  bool
	badPixel     float64
}

func defaultClipConfig() *ClipConfig {
	return &ClipConfig{subtractMean: true}
}

// ClipOption is a functional option for SigmaClip.
type ClipOption = options.Option[*ClipConfig]

// WithMeanSubtraction selects whether sigma is measured around the mean (the default)
// or around zero.
func WithMeanSubtraction(enabled bool) ClipOption {
	return options.NoError(func(cfg *ClipConfig) {
		cfg.subtractMean = enabled
	})
}

// WithRobust computes each iteration in two passes, accumulating squared deviations
// from the iteration mean instead of using raw power sums.
func WithRobust(enabled bool) ClipOption {
	return options.NoError(func(cfg *ClipConfig) {
		cfg.robust = enabled
	})
}

// WithBadPixel excludes every sample equal to value (within float32 epsilon).
func WithBadPixel(value float64) ClipOption {
	return options.NoError(func(cfg *ClipConfig) {
		cfg.useBadPixel = true
		cfg.badPixel = value
	})
}
