package encoding

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/fitsio/endian"
	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/internal/options"
	"github.com/arloliu/fitsio/internal/pool"
)

// Sample is the set of element types a data section can be decoded into.
type Sample interface {
	~float32 | ~float64 | ~int32
}

// Codec converts between physical pixel values and one BITPIX encoding.
type Codec struct {
	bitpix format.BitPix
	layout pixelLayout
	engine endian.EndianEngine
	cfg    *CodecConfig
}

// NewCodec creates a codec for bitpix.
//
// Parameters:
//   - bitpix: one of 8, 16, 32, -32, -64
//   - opts: WithScale, WithDebug, WithLogger
//
// Returns:
//   - *Codec: ready to encode and decode
//   - error: ErrUnsupportedBitPix for any other BITPIX, ErrInvalidScale for a bad scale
func NewCodec(bitpix format.BitPix, opts ...CodecOption) (*Codec, error) {
	layout, err := layoutFor(bitpix)
	if err != nil {
		return nil, err
	}

	cfg := newCodecConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Codec{
		bitpix: bitpix,
		layout: layout,
		engine: endian.GetNativeEngine(),
		cfg:    cfg,
	}, nil
}

// BitPix returns the encoding of the codec.
func (c *Codec) BitPix() format.BitPix {
	return c.bitpix
}

// Scale returns BSCALE.
func (c *Codec) Scale() float64 {
	return c.cfg.scale
}

// Zero returns BZERO.
func (c *Codec) Zero() float64 {
	return c.cfg.zero
}

// DataSize returns the unpadded byte size of count pixels.
func (c *Codec) DataSize(count int) int {
	return count * c.layout.width()
}

// PaddedSize returns the on-disk byte size of count pixels, including block padding.
func (c *Codec) PaddedSize(count int) int {
	return pool.AlignBlock(c.DataSize(count))
}

// Decode decodes count pixels from raw into physical values.
//
// raw is swapped in place to host byte order when the host is little endian, so it
// no longer holds disk-order bytes afterwards. Bytes past count pixels, such as
// block padding, are ignored.
func (c *Codec) Decode(raw []byte, count int) ([]float64, error) {
	return DecodeInto[float64](c, raw, count)
}

// DecodeInto decodes count pixels from raw into a new slice of T. Integer targets
// receive the physical value truncated toward zero and saturated to the int32 range.
// raw is swapped in place as in Codec.Decode.
func DecodeInto[T Sample](c *Codec, raw []byte, count int) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative pixel count %d: %w", count, errs.ErrDataSizeMismatch)
	}

	size := c.DataSize(count)
	if len(raw) < size {
		return nil, fmt.Errorf("data section needs %d bytes, got %d: %w", size, len(raw), errs.ErrShortRead)
	}

	data := raw[:size]
	swapped := endian.NeedsSwap() && c.layout.width() > 1
	if swapped {
		if err := endian.Swap(data, c.layout.width()); err != nil {
			return nil, err
		}
	}

	out := make([]T, count)
	w := c.layout.width()
	for i := range out {
		v := c.layout.get(c.engine, data[i*w:])*c.cfg.scale + c.cfg.zero
		out[i] = convert[T](v)
	}

	if c.cfg.debug {
		c.cfg.logger.Debug("decoded data section",
			"bitpix", int(c.bitpix), "count", count, "bytes", size,
			"bscale", c.cfg.scale, "bzero", c.cfg.zero, "swapped", swapped)
	}

	return out, nil
}

// Encode encodes physical values into a block padded, big endian data section.
func (c *Codec) Encode(values []float64) ([]byte, error) {
	buf := pool.GetDataBuffer()
	defer pool.PutDataBuffer(buf)

	if err := c.encode(buf, values); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

// EncodeTo encodes values and writes the padded data section to w.
// It returns the number of bytes written; a partial write yields ErrShortWrite.
func (c *Codec) EncodeTo(w io.Writer, values []float64) (int, error) {
	buf := pool.GetDataBuffer()
	defer pool.PutDataBuffer(buf)

	if err := c.encode(buf, values); err != nil {
		return 0, err
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return n, fmt.Errorf("write data section: %w", err)
	}
	if n < buf.Len() {
		return n, fmt.Errorf("wrote %d of %d data bytes: %w", n, buf.Len(), errs.ErrShortWrite)
	}

	return n, nil
}

func (c *Codec) encode(buf *pool.ByteBuffer, values []float64) error {
	w := c.layout.width()
	size := len(values) * w
	buf.ExtendOrGrow(size)
	data := buf.Bytes()[:size]

	for i, v := range values {
		c.layout.put(c.engine, data[i*w:], (v-c.cfg.zero)/c.cfg.scale)
	}

	swapped := endian.NeedsSwap() && w > 1
	if swapped {
		if err := endian.Swap(data, w); err != nil {
			return err
		}
	}
	pad := buf.PadToBlock()

	if c.cfg.debug {
		c.cfg.logger.Debug("encoded data section",
			"bitpix", int(c.bitpix), "count", len(values), "bytes", size, "padding", pad,
			"bscale", c.cfg.scale, "bzero", c.cfg.zero, "swapped", swapped)
	}

	return nil
}

func convert[T Sample](v float64) T {
	var zero T
	switch any(zero).(type) {
	case int32:
		if math.IsNaN(v) {
			return 0
		}

		return T(int32(max(math.MinInt32, min(math.MaxInt32, math.Trunc(v)))))
	default:
		return T(v)
	}
}
