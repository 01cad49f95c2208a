package section

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/arloliu/fitsio/errs"
)

var endCard = padCard(KeywordEnd)

// HeaderBuffer owns the bytes of a FITS header. Its length is always a non-zero
// multiple of BlockSize.
//
// A HeaderBuffer is not safe for concurrent use.
type HeaderBuffer struct {
	buf []byte
}

// NewHeaderBuffer creates a single-block header holding the mandatory cards
// SIMPLE = T, BITPIX = 0 and NAXIS = 0, followed by END and blank padding.
func NewHeaderBuffer() *HeaderBuffer {
	h := &HeaderBuffer{buf: blankBlocks(1)}
	putValueCard(h.card(0), KeywordSimple, fixedText(BoolValue(true)), "")
	putValueCard(h.card(1), KeywordBitPix, fixedText(IntValue(0)), "")
	putValueCard(h.card(2), KeywordNAxis, fixedText(IntValue(0)), "")
	copy(h.card(3), endCard)

	return h
}

// ParseHeaderBuffer wraps header bytes read from a file and takes ownership of data.
//
// Returns:
//   - ErrInvalidHeaderSize if len(data) is not a non-zero multiple of BlockSize
//   - ErrMissingEndCard if no END card exists
func ParseHeaderBuffer(data []byte) (*HeaderBuffer, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("header of %d bytes: %w", len(data), errs.ErrInvalidHeaderSize)
	}

	h := &HeaderBuffer{buf: data}
	if _, ok := h.Find(KeywordEnd); !ok {
		return nil, errs.ErrMissingEndCard
	}

	return h, nil
}

// ContainsEnd reports whether data, scanned in 80-byte cards, holds an END card.
// The header decoder uses it to decide when to stop reading blocks.
func ContainsEnd(data []byte) bool {
	for off := 0; off+CardSize <= len(data); off += CardSize {
		if bytes.Equal(data[off:off+KeywordSize], endCard[:KeywordSize]) {
			return true
		}
	}

	return false
}

// Len returns the buffer length in bytes.
func (h *HeaderBuffer) Len() int {
	return len(h.buf)
}

// Blocks returns the number of 2880-byte blocks in the buffer.
func (h *HeaderBuffer) Blocks() int {
	return len(h.buf) / BlockSize
}

// CardCount returns the number of 80-byte cards in the buffer, END and padding included.
func (h *HeaderBuffer) CardCount() int {
	return len(h.buf) / CardSize
}

// Bytes returns the underlying buffer. The slice is invalidated by the next mutation.
func (h *HeaderBuffer) Bytes() []byte {
	return h.buf
}

// Clone returns a deep copy of h.
func (h *HeaderBuffer) Clone() *HeaderBuffer {
	return &HeaderBuffer{buf: bytes.Clone(h.buf)}
}

// Card returns the card at index i, or nil when i is out of range.
// The returned card aliases the buffer.
func (h *HeaderBuffer) Card(i int) Card {
	if i < 0 || i >= h.CardCount() {
		return nil
	}

	return h.card(i)
}

func (h *HeaderBuffer) card(i int) Card {
	return Card(h.buf[i*CardSize : (i+1)*CardSize])
}

// Cards iterates over the cards before END together with their index.
func (h *HeaderBuffer) Cards() iter.Seq2[int, Card] {
	return func(yield func(int, Card) bool) {
		for i := range h.CardCount() {
			c := h.card(i)
			if bytes.Equal(c[:KeywordSize], endCard[:KeywordSize]) {
				return
			}
			if !yield(i, c) {
				return
			}
		}
	}
}

// Find returns the index of the first card whose keyword equals keyword.
// The scan stops at the END card; Find(KeywordEnd) returns the END index.
// A missing keyword is reported by ok == false, not as an error.
func (h *HeaderBuffer) Find(keyword string) (int, bool) {
	if len(keyword) > KeywordSize {
		return -1, false
	}

	padded := padKeyword(keyword)
	for i := range h.CardCount() {
		key := h.buf[i*CardSize : i*CardSize+KeywordSize]
		if bytes.Equal(key, padded) {
			return i, true
		}
		if bytes.Equal(key, endCard[:KeywordSize]) {
			return -1, false
		}
	}

	return -1, false
}

// FindFrom returns the index of the first card at or after start whose keyword equals
// keyword, looking only at cards that end within the first headerSize bytes.
// It does not stop at END.
func (h *HeaderBuffer) FindFrom(keyword string, start, headerSize int) (int, bool) {
	if len(keyword) > KeywordSize || start < 0 {
		return -1, false
	}

	limit := min(headerSize, len(h.buf)) / CardSize
	padded := padKeyword(keyword)
	for i := start; i < limit; i++ {
		if bytes.Equal(h.buf[i*CardSize:i*CardSize+KeywordSize], padded) {
			return i, true
		}
	}

	return -1, false
}

// FindInBlocks is Find bounded by an explicit number of blocks instead of END.
// It is used while the header size is still being established. A non-positive
// or oversized blocks value scans the whole buffer.
func (h *HeaderBuffer) FindInBlocks(keyword string, blocks int) (int, bool) {
	if blocks <= 0 || blocks > h.Blocks() {
		blocks = h.Blocks()
	}

	return h.FindFrom(keyword, 0, blocks*BlockSize)
}

// EnsureCapacityForInsert grows the buffer by one zero-filled block when fewer than
// MinFreeCards cards remain from END to the end of the buffer.
func (h *HeaderBuffer) EnsureCapacityForInsert() error {
	end, ok := h.Find(KeywordEnd)
	if !ok {
		return errs.ErrMissingEndCard
	}

	if h.CardCount()-end < MinFreeCards {
		h.buf = append(h.buf, make([]byte, BlockSize)...)
	}

	return nil
}

// Delete removes the value card keyword and shifts the following cards up by one,
// blanking the last card. It reports whether a card was removed. END and the
// repeating keywords cannot be deleted.
func (h *HeaderBuffer) Delete(keyword string) bool {
	if keyword == KeywordEnd || IsRepeating(keyword) {
		return false
	}

	i, ok := h.Find(keyword)
	if !ok {
		return false
	}

	copy(h.buf[i*CardSize:], h.buf[(i+1)*CardSize:])
	last := h.card(h.CardCount() - 1)
	for j := range last {
		last[j] = ' '
	}

	return true
}

func blankBlocks(n int) []byte {
	return bytes.Repeat([]byte{' '}, n*BlockSize)
}

func padCard(text string) []byte {
	card := bytes.Repeat([]byte{' '}, CardSize)
	copy(card, text)

	return card
}
