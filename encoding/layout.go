package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/fitsio/endian"
	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
)

// pixelLayout reads and writes one pixel in host byte order. The set of layouts is
// closed and resolved once from BITPIX by layoutFor.
type pixelLayout interface {
	width() int
	// get returns the raw pixel value stored at b.
	get(engine endian.EndianEngine, b []byte) float64
	// put stores raw at b, rounding and saturating for integer layouts.
	put(engine endian.EndianEngine, b []byte, raw float64)
}

type (
	uint8Layout   struct{}
	int16Layout   struct{}
	int32Layout   struct{}
	float32Layout struct{}
	float64Layout struct{}
)

func layoutFor(bitpix format.BitPix) (pixelLayout, error) {
	switch bitpix {
	case format.BitPixUint8:
		return uint8Layout{}, nil
	case format.BitPixInt16:
		return int16Layout{}, nil
	case format.BitPixInt32:
		return int32Layout{}, nil
	case format.BitPixFloat32:
		return float32Layout{}, nil
	case format.BitPixFloat64:
		return float64Layout{}, nil
	default:
		return nil, fmt.Errorf("BITPIX %d: %w", int(bitpix), errs.ErrUnsupportedBitPix)
	}
}

func (uint8Layout) width() int { return 1 }

func (uint8Layout) get(_ endian.EndianEngine, b []byte) float64 {
	return float64(b[0])
}

func (uint8Layout) put(_ endian.EndianEngine, b []byte, raw float64) {
	b[0] = uint8(quantize(raw, 0, math.MaxUint8))
}

func (int16Layout) width() int { return 2 }

func (int16Layout) get(engine endian.EndianEngine, b []byte) float64 {
	return float64(int16(engine.Uint16(b)))
}

func (int16Layout) put(engine endian.EndianEngine, b []byte, raw float64) {
	engine.PutUint16(b, uint16(int16(quantize(raw, math.MinInt16, math.MaxInt16))))
}

func (int32Layout) width() int { return 4 }

func (int32Layout) get(engine endian.EndianEngine, b []byte) float64 {
	return float64(int32(engine.Uint32(b)))
}

func (int32Layout) put(engine endian.EndianEngine, b []byte, raw float64) {
	engine.PutUint32(b, uint32(int32(quantize(raw, math.MinInt32, math.MaxInt32))))
}

func (float32Layout) width() int { return 4 }

func (float32Layout) get(engine endian.EndianEngine, b []byte) float64 {
	return float64(math.Float32frombits(engine.Uint32(b)))
}

func (float32Layout) put(engine endian.EndianEngine, b []byte, raw float64) {
	engine.PutUint32(b, math.Float32bits(float32(raw)))
}

func (float64Layout) width() int { return 8 }

func (float64Layout) get(engine endian.EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}

func (float64Layout) put(engine endian.EndianEngine, b []byte, raw float64) {
	engine.PutUint64(b, math.Float64bits(raw))
}

// quantize rounds x half away from zero and clamps it to [lo, hi]. NaN maps to 0.
func quantize(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return 0
	}

	if x >= 0 {
		x = math.Trunc(x + 0.5)
	} else {
		x = math.Trunc(x - 0.5)
	}

	return max(lo, min(hi, x))
}
