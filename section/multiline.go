package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/fitsio/errs"
)

// MultilineField holds the logical text of a repeating keyword (HISTORY or COMMENT)
// independently of the packed header. The text is kept aligned on 72-column lines:
// every Append starts on a fresh line.
//
// The field tracks its allocated capacity explicitly. Unpacking allocates in
// 10-line increments; appending grows to exactly the lines needed.
type MultilineField struct {
	keyword string
	text    []byte // len is the logical length, cap the tracked capacity
}

// NewMultilineField creates an empty field for keyword with zero capacity.
func NewMultilineField(keyword string) *MultilineField {
	return &MultilineField{keyword: keyword}
}

// UnpackField collects the text columns of every keyword card found within the first
// headerSize bytes of h, in header order, verbatim.
//
// Capacity starts at 10*72+1 bytes and is raised to (lines+10)*72+1 each time the
// number of collected lines reaches a multiple of 10.
func UnpackField(h *HeaderBuffer, headerSize int, keyword string) *MultilineField {
	f := &MultilineField{
		keyword: keyword,
		text:    make([]byte, 0, unpackLines*TextWidth+1),
	}

	lines := 0
	for i, ok := h.FindFrom(keyword, 0, headerSize); ok; i, ok = h.FindFrom(keyword, i+1, headerSize) {
		f.text = append(f.text, h.card(i)[TextOffset:]...)
		lines++
		if lines%unpackLines == 0 {
			f.resize((lines+unpackLines)*TextWidth + 1)
		}
	}

	return f
}

// Keyword returns the repeating keyword the field is packed under.
func (f *MultilineField) Keyword() string {
	return f.keyword
}

// Text returns the logical text.
func (f *MultilineField) Text() string {
	return string(f.text)
}

// Len returns the logical length in bytes.
func (f *MultilineField) Len() int {
	return len(f.text)
}

// Cap returns the tracked capacity in bytes.
func (f *MultilineField) Cap() int {
	return cap(f.text)
}

// Lines returns the number of 72-column lines the text occupies once packed.
func (f *MultilineField) Lines() int {
	return lineCount(len(f.text))
}

// Append adds text on a new 72-column line. The last partial line of the existing text
// is padded with spaces to the line boundary first. When the combined lines need more
// than the current capacity, the field grows to exactly lines*72+1 bytes.
//
// Returns the number of bytes of text added. Empty text is a no-op; text with bytes
// outside printable ASCII is rejected with ErrInvalidText.
func (f *MultilineField) Append(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if !isPrintable(text) {
		return 0, fmt.Errorf("%s text: %w", f.keyword, errs.ErrInvalidText)
	}

	lines := lineCount(len(f.text)) + lineCount(len(text))
	if need := lines*TextWidth + 1; need > cap(f.text) {
		f.resize(need)
	}

	if partial := len(f.text) % TextWidth; partial > 0 {
		f.text = append(f.text, bytes.Repeat([]byte{' '}, TextWidth-partial)...)
	}
	f.text = append(f.text, text...)

	return len(text), nil
}

func (f *MultilineField) resize(capacity int) {
	grown := make([]byte, len(f.text), capacity)
	copy(grown, f.text)
	f.text = grown
}

func lineCount(n int) int {
	return (n + TextWidth - 1) / TextWidth
}
