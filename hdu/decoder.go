package hdu

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/internal/hash"
	"github.com/arloliu/fitsio/section"
)

// Decoder reads one primary image from a stream.
//
// Note: The Decoder is NOT reusable. It reads the header and data section of a
// single image; create a new decoder for the next stream.
type Decoder struct {
	r      io.Reader
	cfg    *Config
	header *section.HeaderBuffer
}

// NewDecoder creates a decoder reading from r.
//
// Parameters:
//   - r: stream positioned at the first header block
//   - opts: WithLogger, WithDebug
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{r: r, cfg: cfg}, nil
}

// DecodeHeader reads header blocks up to and including the one holding END and maps
// them to an ImageHeader. The data section is left unread.
//
// Returns:
//   - *section.HeaderBuffer: every header card as read
//   - ImageHeader: the typed fields
//   - error: ErrNotFITS when the first card is neither SIMPLE nor XTENSION,
//     ErrShortRead on a truncated block, ErrMissingEndCard when the stream ends
//     before END, or any LoadImageHeader error
func (d *Decoder) DecodeHeader() (*section.HeaderBuffer, ImageHeader, error) {
	if d.header == nil {
		h, err := d.readHeader()
		if err != nil {
			return nil, ImageHeader{}, err
		}
		d.header = h
	}

	ih, err := LoadImageHeader(d.header, d.header.Blocks())
	if err != nil {
		return nil, ImageHeader{}, err
	}

	if d.cfg.debug {
		d.cfg.logger.Debug("decoded header",
			"blocks", d.header.Blocks(),
			"naxis", ih.NAxis,
			"axes", ih.Axes[:ih.NAxis],
			"bitpix", ih.BitPix.String(),
		)
	}

	return d.header, ih, nil
}

// Decode reads the header and the data section and returns the image. Only the
// PixelCount*|BITPIX|/8 data bytes are read; trailing block padding is not consumed.
//
// Returns:
//   - *Image: header cards, typed header, HISTORY and COMMENT text, physical pixels
//   - error: any DecodeHeader error, or ErrShortRead when the data section is truncated
func (d *Decoder) Decode() (*Image, error) {
	h, ih, err := d.DecodeHeader()
	if err != nil {
		return nil, err
	}

	codec, err := ih.Codec(d.cfg.codecOptions()...)
	if err != nil {
		return nil, err
	}

	count := ih.PixelCount()
	size := codec.DataSize(count)

	// grow with the bytes read, not the declared size
	var data bytes.Buffer
	if n, err := io.CopyN(&data, d.r, int64(size)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("data section of %d bytes, got %d: %w", size, n, errs.ErrShortRead)
		}

		return nil, fmt.Errorf("data section of %d bytes: %w", size, readError(err))
	}
	raw := data.Bytes()
	digest := hash.Digest(raw)

	pixels, err := codec.Decode(raw, count)
	if err != nil {
		return nil, err
	}

	end, _ := h.Find(section.KeywordEnd)
	headerSize := end * section.CardSize

	return &Image{
		Header:  ih,
		Cards:   h,
		History: section.UnpackField(h, headerSize, section.KeywordHistory),
		Comment: section.UnpackField(h, headerSize, section.KeywordComment),
		Pixels:  pixels,
		Digest:  digest,
	}, nil
}

func (d *Decoder) readHeader() (*section.HeaderBuffer, error) {
	var buf bytes.Buffer
	block := make([]byte, section.BlockSize)

	for {
		if n, err := io.ReadFull(d.r, block); err != nil {
			if buf.Len() == 0 && n > 0 && !isPrimaryStart(block[:n]) {
				return nil, errs.ErrNotFITS
			}
			if errors.Is(err, io.EOF) {
				if buf.Len() == 0 {
					return nil, fmt.Errorf("empty stream: %w", errs.ErrNotFITS)
				}

				return nil, errs.ErrMissingEndCard
			}

			return nil, fmt.Errorf("header block %d: %w", buf.Len()/section.BlockSize, readError(err))
		}

		if buf.Len() == 0 && !isPrimaryStart(block) {
			return nil, errs.ErrNotFITS
		}
		buf.Write(block)

		if section.ContainsEnd(block) {
			return section.ParseHeaderBuffer(buf.Bytes())
		}
	}
}

func isPrimaryStart(block []byte) bool {
	key := string(bytes.TrimRight(block[:min(len(block), section.KeywordSize)], " "))

	return key == section.KeywordSimple || key == section.KeywordXtension
}

// readError maps a truncated read to ErrShortRead and keeps other errors.
func readError(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return errs.ErrShortRead
	}

	return err
}
