package hdu

import (
	"fmt"
	"math"

	"github.com/arloliu/fitsio/encoding"
	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/section"
	"github.com/arloliu/fitsio/stats"
)

// MaxAxes is the largest NAXIS supported.
const MaxAxes = 3

// ImageHeader holds the typed fields of a primary image header.
//
// Only the first NAxis entries of Axes, CRPix, CRVal and CDelt are read from a header;
// Store writes the world coordinate entries for every axis that is non-zero.
type ImageHeader struct {
	NAxis   int
	Axes    [MaxAxes]int
	BitPix  format.BitPix
	BScale  float64
	BZero   float64
	CRPix   [MaxAxes]float64
	CRVal   [MaxAxes]float64
	CDelt   [MaxAxes]float64
	CRota   [2]float64
	CType   [2]string
	Epoch   float64
	DataMin float64
	DataMax float64
}

// NewImageHeader returns a header for an image of the given axis lengths with
// BSCALE 1 and every other optional field at its default.
func NewImageHeader(bitpix format.BitPix, axes ...int) (ImageHeader, error) {
	ih := ImageHeader{
		NAxis:  len(axes),
		BitPix: bitpix,
		BScale: 1,
	}
	if ih.NAxis > MaxAxes {
		return ImageHeader{}, fmt.Errorf("NAXIS = %d: %w", ih.NAxis, errs.ErrUnsupportedAxisCount)
	}
	copy(ih.Axes[:], axes)

	if err := ih.Validate(); err != nil {
		return ImageHeader{}, err
	}

	return ih, nil
}

// LoadImageHeader reads the typed fields from the first blocks blocks of h.
//
// Returns:
//   - ErrUnsupportedAxisCount when NAXIS is missing or outside 1..3
//   - ErrMissingKeyword when BITPIX is missing
//   - ErrUnsupportedBitPix for a BITPIX other than 8, 16, 32, -32, -64
//   - ErrInvalidValue when a present card cannot be parsed
func LoadImageHeader(h *section.HeaderBuffer, blocks int) (ImageHeader, error) {
	r := headerReader{h: h, blocks: blocks}

	ih := ImageHeader{
		NAxis: int(r.int(section.KeywordNAxis, 0)),
	}
	if r.err != nil {
		return ImageHeader{}, r.err
	}
	if ih.NAxis < 1 || ih.NAxis > MaxAxes {
		return ImageHeader{}, fmt.Errorf("NAXIS = %d: %w", ih.NAxis, errs.ErrUnsupportedAxisCount)
	}

	bitpix, ok, err := h.ReadInt(section.KeywordBitPix, blocks)
	if err != nil {
		return ImageHeader{}, err
	}
	if !ok {
		return ImageHeader{}, fmt.Errorf("%s: %w", section.KeywordBitPix, errs.ErrMissingKeyword)
	}
	ih.BitPix = format.BitPix(bitpix)

	for n := 1; n <= ih.NAxis; n++ {
		ih.Axes[n-1] = int(r.int(axisKeyword(n), 0))
		ih.CRPix[n-1] = r.float(indexed("CRPIX", n), 0)
		ih.CRVal[n-1] = r.float(indexed("CRVAL", n), 0)
		ih.CDelt[n-1] = r.float(indexed("CDELT", n), 0)
	}
	ih.CRota[0] = r.float("CROTA1", 0)
	ih.CType[0] = r.string("CTYPE1")
	if ih.NAxis > 1 {
		ih.CRota[1] = r.float("CROTA2", 0)
		ih.CType[1] = r.string("CTYPE2")
	}

	ih.BScale = r.float(section.KeywordBScale, 1)
	ih.BZero = r.float(section.KeywordBZero, 0)
	ih.Epoch = r.float(section.KeywordEpoch, 0)
	ih.DataMin = r.float(section.KeywordDataMin, 0)
	ih.DataMax = r.float(section.KeywordDataMax, 0)
	if r.err != nil {
		return ImageHeader{}, r.err
	}

	if err := ih.Validate(); err != nil {
		return ImageHeader{}, err
	}

	return ih, nil
}

// Store writes the typed fields into h.
//
// NAXIS, NAXISn and BITPIX are always written; NAXISn cards beyond NAXIS are removed.
// The optional cards follow the creation rules: BSCALE only when it differs from the
// identity mapping, BZERO, the world coordinate cards, CROTAn and EPOCH only when their
// magnitude exceeds float32 epsilon, CTYPE1 and CTYPE2 only when both are longer than
// one character, DATAMIN and DATAMAX only when DataMax > DataMin.
//
// These rules only decide whether a missing card is created. A card already in h is
// rewritten with the field value, or removed when the field holds its load default,
// so that loading h again yields the same ImageHeader. Cards that LoadImageHeader
// does not read for this NAXIS are left untouched when their field is unset.
func (ih ImageHeader) Store(h *section.HeaderBuffer) error {
	if err := ih.Validate(); err != nil {
		return err
	}

	w := headerWriter{h: h}
	w.write(section.KeywordNAxis, section.IntValue(ih.NAxis))
	for n := 1; n <= MaxAxes; n++ {
		if n <= ih.NAxis {
			w.write(axisKeyword(n), section.IntValue(ih.Axes[n-1]))
		} else {
			h.Delete(axisKeyword(n))
		}
	}
	w.write(section.KeywordBitPix, section.IntValue(ih.BitPix))

	w.optional((ih.BZero != 0 || ih.BScale != 1) && ih.BScale != 0,
		section.KeywordBScale, section.ExpValue(ih.BScale), ih.BScale == 1, true)
	w.nonZero(section.KeywordBZero, ih.BZero, true)

	for n := 1; n <= MaxAxes; n++ {
		loaded := n <= ih.NAxis
		w.nonZero(indexed("CRPIX", n), ih.CRPix[n-1], loaded)
		w.nonZero(indexed("CRVAL", n), ih.CRVal[n-1], loaded)
		w.nonZero(indexed("CDELT", n), ih.CDelt[n-1], loaded)
	}
	w.nonZero("CROTA1", ih.CRota[0], true)
	w.nonZero("CROTA2", ih.CRota[1], ih.NAxis > 1)

	typed := len(ih.CType[0]) > 1 && len(ih.CType[1]) > 1
	w.optional(typed, "CTYPE1", section.StringValue(ih.CType[0]), ih.CType[0] == "", true)
	w.optional(typed, "CTYPE2", section.StringValue(ih.CType[1]), ih.CType[1] == "", ih.NAxis > 1)

	w.nonZero(section.KeywordEpoch, ih.Epoch, true)

	ranged := ih.DataMax > ih.DataMin
	w.optional(ranged, section.KeywordDataMin, section.ExpValue(ih.DataMin), ih.DataMin == 0, true)
	w.optional(ranged, section.KeywordDataMax, section.ExpValue(ih.DataMax), ih.DataMax == 0, true)

	return w.err
}

// Validate checks NAXIS, the axis lengths, BITPIX and BSCALE.
func (ih ImageHeader) Validate() error {
	if ih.NAxis < 1 || ih.NAxis > MaxAxes {
		return fmt.Errorf("NAXIS = %d: %w", ih.NAxis, errs.ErrUnsupportedAxisCount)
	}
	for n := range ih.NAxis {
		if ih.Axes[n] < 0 {
			return fmt.Errorf("%s = %d: %w", axisKeyword(n+1), ih.Axes[n], errs.ErrInvalidValue)
		}
	}
	if !ih.BitPix.Valid() {
		return fmt.Errorf("BITPIX = %d: %w", int(ih.BitPix), errs.ErrUnsupportedBitPix)
	}
	if _, ok := ih.dataSize(); !ok {
		return fmt.Errorf("data section of %v x %d bytes overflows: %w",
			ih.Axes[:ih.NAxis], ih.BitPix.Width(), errs.ErrInvalidValue)
	}
	if ih.BScale == 0 || math.IsNaN(ih.BScale) || math.IsInf(ih.BScale, 0) {
		return fmt.Errorf("BSCALE = %g: %w", ih.BScale, errs.ErrInvalidScale)
	}

	return nil
}

// PixelCount returns the product of the first NAxis axis lengths. It returns 0 for
// a header that fails Validate.
func (ih ImageHeader) PixelCount() int {
	count, ok := ih.pixelCount()
	if !ok {
		return 0
	}

	return count
}

// DataSize returns the unpadded size of the data section in bytes.
func (ih ImageHeader) DataSize() int {
	size, ok := ih.dataSize()
	if !ok {
		return 0
	}

	return size
}

// pixelCount multiplies the axis lengths and reports false on overflow or a
// negative length.
func (ih ImageHeader) pixelCount() (int, bool) {
	if ih.NAxis < 1 {
		return 0, true
	}

	count := 1
	for n := range min(ih.NAxis, MaxAxes) {
		axis := ih.Axes[n]
		if axis < 0 {
			return 0, false
		}
		if axis != 0 && count > math.MaxInt/axis {
			return 0, false
		}
		count *= axis
	}

	return count, true
}

func (ih ImageHeader) dataSize() (int, bool) {
	count, ok := ih.pixelCount()
	if !ok {
		return 0, false
	}

	width := max(ih.BitPix.Width(), 1)
	if count > (math.MaxInt-section.BlockSize)/width {
		return 0, false
	}

	return count * width, true
}

// PaddedDataSize returns the on-disk size of the data section, a multiple of 2880.
func (ih ImageHeader) PaddedDataSize() int {
	size := ih.DataSize()
	if rem := size % section.BlockSize; rem != 0 {
		size += section.BlockSize - rem
	}

	return size
}

// Codec returns a codec for BITPIX carrying BSCALE and BZERO. Extra options are
// applied after the scale.
func (ih ImageHeader) Codec(opts ...encoding.CodecOption) (*encoding.Codec, error) {
	all := make([]encoding.CodecOption, 0, len(opts)+1)
	all = append(all, encoding.WithScale(ih.BScale, ih.BZero))
	all = append(all, opts...)

	return encoding.NewCodec(ih.BitPix, all...)
}

func axisKeyword(n int) string {
	return indexed(section.KeywordNAxis, n)
}

func indexed(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}

// headerReader keeps the first error so a run of optional reads can be checked once.
type headerReader struct {
	h      *section.HeaderBuffer
	blocks int
	err    error
}

func (r *headerReader) int(keyword string, def int64) int64 {
	if r.err != nil {
		return def
	}

	v, ok, err := r.h.ReadInt(keyword, r.blocks)
	if err != nil {
		r.err = err
	}
	if !ok || err != nil {
		return def
	}

	return v
}

func (r *headerReader) float(keyword string, def float64) float64 {
	if r.err != nil {
		return def
	}

	v, ok, err := r.h.ReadFloat(keyword, r.blocks)
	if err != nil {
		r.err = err
	}
	if !ok || err != nil {
		return def
	}

	return v
}

func (r *headerReader) string(keyword string) string {
	if r.err != nil {
		return ""
	}

	v, _, err := r.h.ReadString(keyword, r.blocks)
	if err != nil {
		r.err = err
		return ""
	}

	return v
}

// headerWriter keeps the first error of a run of writes.
type headerWriter struct {
	h   *section.HeaderBuffer
	err error
}

func (w *headerWriter) write(keyword string, value section.Value) {
	if w.err != nil {
		return
	}
	w.err = w.h.Write(keyword, value)
}

// optional writes an optional card. create decides whether a missing card is added.
// An existing card is rewritten, or deleted when unset reports the load default and
// managed reports that LoadImageHeader reads the card.
func (w *headerWriter) optional(create bool, keyword string, value section.Value, unset, managed bool) {
	if create {
		w.write(keyword, value)
		return
	}
	if _, ok := w.h.Find(keyword); !ok {
		return
	}

	switch {
	case !unset:
		w.write(keyword, value)
	case managed:
		w.h.Delete(keyword)
	}
}

func (w *headerWriter) nonZero(keyword string, x float64, managed bool) {
	w.optional(math.Abs(x) > stats.Float32Epsilon, keyword, section.ExpValue(x), x == 0, managed)
}
