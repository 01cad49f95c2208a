package hdu

import (
	"fmt"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/section"
	"github.com/arloliu/fitsio/stats"
)

// Image is a primary HDU held in memory.
//
// Cards carries every header card, including ones the mapper does not know about.
// Header is written over Cards on encode, and History and Comment replace the
// HISTORY and COMMENT cards.
type Image struct {
	Header  ImageHeader
	Cards   *section.HeaderBuffer
	History *section.MultilineField
	Comment *section.MultilineField
	Pixels  []float64
	// Digest is the xxHash64 of the data section in disk order, set by the decoder
	// and the encoder.
	Digest uint64
}

// NewImage creates an image of the given axis lengths with zeroed pixels.
func NewImage(bitpix format.BitPix, axes ...int) (*Image, error) {
	header, err := NewImageHeader(bitpix, axes...)
	if err != nil {
		return nil, err
	}

	return &Image{
		Header:  header,
		Cards:   section.NewHeaderBuffer(),
		History: section.NewMultilineField(section.KeywordHistory),
		Comment: section.NewMultilineField(section.KeywordComment),
		Pixels:  make([]float64, header.PixelCount()),
	}, nil
}

// AddHistory appends text as new HISTORY lines.
func (img *Image) AddHistory(text string) error {
	if img.History == nil {
		img.History = section.NewMultilineField(section.KeywordHistory)
	}
	_, err := img.History.Append(text)

	return err
}

// AddHistoryRecord appends the lines of rec to HISTORY.
func (img *Image) AddHistoryRecord(rec HistoryRecord) error {
	for _, line := range rec.Lines() {
		if err := img.AddHistory(line); err != nil {
			return err
		}
	}

	return nil
}

// AddComment appends text as new COMMENT lines.
func (img *Image) AddComment(text string) error {
	if img.Comment == nil {
		img.Comment = section.NewMultilineField(section.KeywordComment)
	}
	_, err := img.Comment.Append(text)

	return err
}

// SetPixels replaces the pixels. The length must equal the header pixel count.
func (img *Image) SetPixels(pixels []float64) error {
	if len(pixels) != img.Header.PixelCount() {
		return fmt.Errorf("%d pixels for a %d pixel image: %w",
			len(pixels), img.Header.PixelCount(), errs.ErrDataSizeMismatch)
	}
	img.Pixels = pixels

	return nil
}

// Summary returns the moments and range of the pixels.
func (img *Image) Summary() (stats.Summary, error) {
	return stats.Summarize(img.Pixels)
}
