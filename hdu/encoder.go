package hdu

import (
	"fmt"
	"io"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/internal/hash"
	"github.com/arloliu/fitsio/section"
	"github.com/arloliu/fitsio/stats"
)

// Encoder writes one primary image to a stream.
type Encoder struct {
	w   io.Writer
	cfg *Config
}

// NewEncoder creates an encoder writing to w.
//
// Parameters:
//   - w: destination stream
//   - opts: WithLogger, WithDebug, WithStats
func NewEncoder(w io.Writer, opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{w: w, cfg: cfg}, nil
}

// Encode writes img as a header followed by its block padded data section.
//
// The typed header is stored over a copy of img.Cards, HISTORY and COMMENT are
// repacked from img.History and img.Comment, and the pixels are encoded with
// the header BITPIX, BSCALE and BZERO. img.Cards is not modified; img.Digest is
// set to the digest of the written data section.
//
// Returns:
//   - int64: total bytes written
//   - error: ErrDataSizeMismatch when the pixel count does not match the header,
//     ErrShortWrite when w accepts fewer bytes than given, or a header error
func (e *Encoder) Encode(img *Image) (int64, error) {
	ih := img.Header
	count := ih.PixelCount()
	if len(img.Pixels) != count {
		return 0, fmt.Errorf("%d pixels for a %d pixel header: %w", len(img.Pixels), count, errs.ErrDataSizeMismatch)
	}

	if e.cfg.withStats && count > 0 {
		lo, hi, err := stats.MinMax(img.Pixels)
		if err != nil {
			return 0, err
		}
		ih.DataMin, ih.DataMax = lo, hi
	}

	cards := section.NewHeaderBuffer()
	if img.Cards != nil {
		cards = img.Cards.Clone()
	}
	if err := ih.Store(cards); err != nil {
		return 0, err
	}

	packed, err := section.Pack(cards, img.History, img.Comment)
	if err != nil {
		return 0, err
	}

	codec, err := ih.Codec(e.cfg.codecOptions()...)
	if err != nil {
		return 0, err
	}
	data, err := codec.Encode(img.Pixels)
	if err != nil {
		return 0, err
	}

	written, err := writeFull(e.w, packed.Bytes())
	if err != nil {
		return written, fmt.Errorf("header: %w", err)
	}
	n, err := writeFull(e.w, data)
	written += n
	if err != nil {
		return written, fmt.Errorf("data section: %w", err)
	}

	img.Digest = hash.Digest(data[:codec.DataSize(count)])

	if e.cfg.debug {
		e.cfg.logger.Debug("encoded image",
			"header_blocks", packed.Blocks(),
			"pixels", count,
			"bitpix", ih.BitPix.String(),
			"bytes", written,
		)
	}

	return written, nil
}

func writeFull(w io.Writer, p []byte) (int64, error) {
	n, err := w.Write(p)
	if err != nil {
		return int64(n), err
	}
	if n != len(p) {
		return int64(n), errs.ErrShortWrite
	}

	return int64(n), nil
}
