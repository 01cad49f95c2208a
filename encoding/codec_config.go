package encoding

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/internal/options"
)

// CodecConfig holds the affine transform and diagnostics settings of a Codec.
type CodecConfig struct {
	scale  float64
	zero   float64
	debug  bool
	logger *slog.Logger
}

func newCodecConfig() *CodecConfig {
	return &CodecConfig{
		scale:  1,
		zero:   0,
		logger: slog.Default(),
	}
}

// CodecOption configures a Codec.
type CodecOption = options.Option[*CodecConfig]

// WithScale sets BSCALE and BZERO. The default is scale 1, zero 0.
// A zero or non-finite scale is rejected with ErrInvalidScale.
func WithScale(scale, zero float64) CodecOption {
	return options.New(func(c *CodecConfig) error {
		if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return fmt.Errorf("BSCALE %v: %w", scale, errs.ErrInvalidScale)
		}
		if math.IsNaN(zero) || math.IsInf(zero, 0) {
			return fmt.Errorf("BZERO %v: %w", zero, errs.ErrInvalidScale)
		}
		c.scale, c.zero = scale, zero

		return nil
	})
}

// WithDebug enables debug logging of every encode and decode call.
func WithDebug(debug bool) CodecOption {
	return options.NoError(func(c *CodecConfig) {
		c.debug = debug
	})
}

// WithLogger sets the logger used when debug logging is enabled.
// A nil logger keeps the default.
func WithLogger(logger *slog.Logger) CodecOption {
	return options.NoError(func(c *CodecConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
