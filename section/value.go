package section

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/fitsio/errs"
)

// Value is a typed card value. The set of implementations is closed:
// IntValue, FloatValue, ExpValue, BoolValue, StringValue and CommentValue.
type Value interface {
	// format renders the value in its fixed-column layout, starting at column 11.
	format() (string, error)
}

type (
	// IntValue is an integer right-justified in 20 columns.
	IntValue int64
	// FloatValue is a fixed-point number with 4 decimals right-justified in 20 columns.
	FloatValue float64
	// ExpValue is a number in exponential notation with 9 decimals right-justified in 20 columns.
	ExpValue float64
	// BoolValue is a logical rendered as T or F in column 30.
	BoolValue bool
	// StringValue is a quoted character string occupying the 69 value columns.
	StringValue string
	// CommentValue is free text right-justified in the 69 value columns.
	CommentValue string
)

var (
	_ Value = IntValue(0)
	_ Value = FloatValue(0)
	_ Value = ExpValue(0)
	_ Value = BoolValue(false)
	_ Value = StringValue("")
	_ Value = CommentValue("")
)

func (v IntValue) format() (string, error) {
	return fmt.Sprintf("%20d", int64(v)), nil
}

// format falls back to exponential notation when the fixed-point form does not
// fit in 20 columns.
func (v FloatValue) format() (string, error) {
	if err := checkFinite(float64(v)); err != nil {
		return "", err
	}

	s := fmt.Sprintf("        %12.4f", float64(v))
	if len(s) > fieldWidth {
		return ExpValue(v).format()
	}

	return s, nil
}

func (v ExpValue) format() (string, error) {
	if err := checkFinite(float64(v)); err != nil {
		return "", err
	}

	s := fmt.Sprintf("    %16.9E", float64(v))
	if len(s) > fieldWidth {
		s = fmt.Sprintf("%20.8E", float64(v))
	}

	return s, nil
}

func (v BoolValue) format() (string, error) {
	if v {
		return fmt.Sprintf("%20s", "T"), nil
	}

	return fmt.Sprintf("%20s", "F"), nil
}

// format quotes the string with embedded quotes doubled, places the closing quote
// no earlier than column 20 and truncates the content so the result fits 69 columns.
func (v StringValue) format() (string, error) {
	s := string(v)
	if !isPrintable(s) {
		return "", fmt.Errorf("string value %q: %w", s, errs.ErrInvalidValue)
	}

	s = strings.TrimRight(s, " ")
	quoted := strings.ReplaceAll(s, "'", "''")
	for len(quoted)+2 > stringWidth {
		s = s[:len(s)-1]
		quoted = strings.ReplaceAll(s, "'", "''")
	}

	return fmt.Sprintf("%-*s", stringWidth, fmt.Sprintf("'%-8s'", quoted)), nil
}

func (v CommentValue) format() (string, error) {
	s := string(v)
	if !isPrintable(s) {
		return "", fmt.Errorf("comment value %q: %w", s, errs.ErrInvalidValue)
	}
	if len(s) > stringWidth {
		s = s[:stringWidth]
	}

	return fmt.Sprintf("%*s", stringWidth, s), nil
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("non-finite value %v: %w", f, errs.ErrInvalidValue)
	}

	return nil
}

// fixedText formats a value whose formatting cannot fail.
func fixedText(v Value) string {
	s, _ := v.format()
	return s
}
