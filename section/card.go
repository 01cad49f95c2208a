package section

import (
	"bytes"
	"strings"
)

// Card is a view of one 80-byte header record. It aliases the header buffer.
type Card []byte

// Keyword returns the keyword columns with trailing spaces removed.
func (c Card) Keyword() string {
	if len(c) < KeywordSize {
		return ""
	}

	return string(bytes.TrimRight(c[:KeywordSize], " \x00"))
}

// IsValue reports whether the card carries the '=' value marker in column 9.
func (c Card) IsValue() bool {
	return len(c) == CardSize && c[KeywordSize] == '=' && c[KeywordSize+1] == ' '
}

// IsBlank reports whether the card holds only spaces or zero bytes.
func (c Card) IsBlank() bool {
	for _, b := range c {
		if b != ' ' && b != 0 {
			return false
		}
	}

	return true
}

// Text returns the 72 free-text columns of a HISTORY or COMMENT card, unmodified.
func (c Card) Text() string {
	if len(c) < CardSize {
		return ""
	}

	return string(c[TextOffset:])
}

// RawValue returns the value text of a value card: the columns from 11 up to an
// unquoted '/', with surrounding spaces removed.
func (c Card) RawValue() string {
	value, _ := c.split()
	return value
}

// Comment returns the text following the unquoted '/' of a value card.
func (c Card) Comment() string {
	_, comment := c.split()
	return comment
}

func (c Card) split() (string, string) {
	if !c.IsValue() {
		return "", ""
	}

	field := string(c[ValueOffset:])
	inQuote := false
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '\'':
			inQuote = !inQuote
		case '/':
			if !inQuote {
				return strings.TrimSpace(field[:i]), strings.TrimSpace(field[i+1:])
			}
		}
	}

	return strings.TrimSpace(field), ""
}

// String returns the card as text with NUL bytes shown as spaces.
func (c Card) String() string {
	return strings.ReplaceAll(string(c), "\x00", " ")
}

// padKeyword returns keyword left-justified in the 8 keyword columns.
// The caller guarantees len(keyword) <= KeywordSize.
func padKeyword(keyword string) []byte {
	padded := []byte("        ")
	copy(padded, keyword)

	return padded
}

func isPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}

	return true
}

func validKeyword(keyword string) bool {
	if keyword == "" || len(keyword) > KeywordSize {
		return false
	}
	for i := 0; i < len(keyword); i++ {
		c := keyword[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') && c != '-' && c != '_' {
			return false
		}
	}

	return true
}
