package section

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/fitsio/errs"
)

// Add inserts an empty value card for keyword carrying comment, in place of the END
// card, and writes a new END card on the following line. If keyword already exists,
// its index is returned and the header is left untouched.
//
// Parameters:
//   - keyword: 1 to 8 characters from A-Z, 0-9, '-' and '_'
//   - comment: printable text, truncated to 47 columns
//
// Returns:
//   - int: index of the inserted or existing card
//   - error: ErrRepeatingKeyword for HISTORY/COMMENT, ErrInvalidKeyword or ErrInvalidText
//     for malformed input, ErrMissingEndCard if the header has no END card
func (h *HeaderBuffer) Add(keyword, comment string) (int, error) {
	if err := checkValueKeyword(keyword); err != nil {
		return -1, err
	}
	if !isPrintable(comment) {
		return -1, fmt.Errorf("comment for %s: %w", keyword, errs.ErrInvalidText)
	}

	if i, ok := h.Find(keyword); ok {
		return i, nil
	}

	if err := h.EnsureCapacityForInsert(); err != nil {
		return -1, err
	}

	end, _ := h.Find(KeywordEnd)
	putValueCard(h.card(end), keyword, "", comment)
	copy(h.card(end+1), endCard)

	return end, nil
}

// Write sets the value of keyword, adding the card first when it is absent. The
// formatted value is copied from column 11 on; the keyword, the value marker and
// any columns past the formatted width are left as they were, so an existing card
// keeps its position and its comment when the value is narrow.
func (h *HeaderBuffer) Write(keyword string, value Value) error {
	if value == nil {
		return fmt.Errorf("nil value for %s: %w", keyword, errs.ErrInvalidValue)
	}

	text, err := value.format()
	if err != nil {
		return fmt.Errorf("write %s: %w", keyword, err)
	}

	i, err := h.Add(keyword, "")
	if err != nil {
		return err
	}

	copy(h.card(i)[ValueOffset:], text)

	return nil
}

// ReadInt parses the integer value of keyword within the first blocks blocks.
// found is false when the card is absent. Integral real values such as "3.0" are accepted.
func (h *HeaderBuffer) ReadInt(keyword string, blocks int) (int64, bool, error) {
	raw, ok := h.rawValue(keyword, blocks)
	if !ok {
		return 0, false, nil
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, true, nil
	}

	f, err := parseReal(raw)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, true, invalidValue(keyword, raw)
	}

	return int64(f), true, nil
}

// ReadFloat parses the real value of keyword within the first blocks blocks.
// Both E and D exponents are accepted.
func (h *HeaderBuffer) ReadFloat(keyword string, blocks int) (float64, bool, error) {
	raw, ok := h.rawValue(keyword, blocks)
	if !ok {
		return 0, false, nil
	}

	f, err := parseReal(raw)
	if err != nil {
		return 0, true, invalidValue(keyword, raw)
	}

	return f, true, nil
}

// ReadBool parses the logical value (T or F) of keyword within the first blocks blocks.
func (h *HeaderBuffer) ReadBool(keyword string, blocks int) (bool, bool, error) {
	raw, ok := h.rawValue(keyword, blocks)
	if !ok {
		return false, false, nil
	}

	switch raw {
	case "T":
		return true, true, nil
	case "F":
		return false, true, nil
	default:
		return false, true, invalidValue(keyword, raw)
	}
}

// ReadString parses the character string value of keyword within the first blocks
// blocks. Quoted strings are unquoted with doubled quotes collapsed and trailing
// spaces removed; an unquoted value is returned as written.
func (h *HeaderBuffer) ReadString(keyword string, blocks int) (string, bool, error) {
	raw, ok := h.rawValue(keyword, blocks)
	if !ok {
		return "", false, nil
	}

	if !strings.HasPrefix(raw, "'") {
		return raw, true, nil
	}

	var sb strings.Builder
	for i := 1; i < len(raw); i++ {
		if raw[i] != '\'' {
			sb.WriteByte(raw[i])
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '\'' {
			sb.WriteByte('\'')
			i++

			continue
		}

		return strings.TrimRight(sb.String(), " "), true, nil
	}

	return "", true, invalidValue(keyword, raw)
}

func (h *HeaderBuffer) rawValue(keyword string, blocks int) (string, bool) {
	i, ok := h.FindInBlocks(keyword, blocks)
	if !ok {
		return "", false
	}

	// An undefined value, such as a card added without Write, reads as absent.
	raw := strings.TrimRight(h.card(i).RawValue(), "\x00")
	if raw == "" {
		return "", false
	}

	return raw, true
}

func parseReal(raw string) (float64, error) {
	return strconv.ParseFloat(strings.NewReplacer("D", "E", "d", "e").Replace(raw), 64)
}

func invalidValue(keyword, raw string) error {
	return fmt.Errorf("%s = %q: %w", keyword, raw, errs.ErrInvalidValue)
}

func checkValueKeyword(keyword string) error {
	if IsRepeating(keyword) {
		return fmt.Errorf("%s: %w", keyword, errs.ErrRepeatingKeyword)
	}
	if keyword == KeywordEnd || !validKeyword(keyword) {
		return fmt.Errorf("keyword %q: %w", keyword, errs.ErrInvalidKeyword)
	}

	return nil
}

// putValueCard overwrites card with keyword, the value marker, value at column 11
// and comment after "/ " at column 33.
func putValueCard(card Card, keyword, value, comment string) {
	line := fmt.Sprintf("%-8.8s=%22s/ %-*.*s", keyword, "", commentWidth, commentWidth, comment)
	copy(card, line)
	copy(card[ValueOffset:], value)
}
