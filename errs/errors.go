// Package errs defines the sentinel errors returned by fitsio packages.
//
// Every sentinel carries a Kind so callers can tell malformed input (Format) from transport
// failures (IO) without matching each sentinel individually:
//
//	img, err := fitsio.ReadFile("m31.fits")
//	switch {
//	case errs.IsFormat(err):
//	    // the file is not a FITS image this package understands
//	case errs.IsIO(err):
//	    // short read, missing file, ...
//	}
//
// Sentinels are compared with errors.Is and survive fmt.Errorf("...: %w") wrapping.
package errs

import "errors"

// Kind classifies an error.
type Kind uint8

const (
	KindUnknown  Kind = iota // KindUnknown is returned for errors not created by this package.
	KindFormat               // KindFormat marks malformed or unsupported FITS content.
	KindIO                   // KindIO marks read/write failures, including short transfers.
	KindInternal             // KindInternal marks a broken internal invariant.
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

func newError(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Format errors.
var (
	ErrNotFITS              = newError(KindFormat, "not a FITS file")
	ErrInvalidHeaderSize    = newError(KindFormat, "header size is not a multiple of the block size")
	ErrMissingEndCard       = newError(KindFormat, "header has no END card")
	ErrMissingKeyword       = newError(KindFormat, "mandatory keyword is missing")
	ErrUnsupportedAxisCount = newError(KindFormat, "NAXIS must be 1, 2 or 3")
	ErrUnsupportedBitPix    = newError(KindFormat, "unsupported BITPIX")
	ErrInvalidKeyword       = newError(KindFormat, "invalid keyword")
	ErrRepeatingKeyword     = newError(KindFormat, "HISTORY and COMMENT cannot be written as value cards")
	ErrInvalidValue         = newError(KindFormat, "invalid card value")
	ErrInvalidText          = newError(KindFormat, "text contains non printable characters")
	ErrInvalidScale         = newError(KindFormat, "BSCALE must not be zero")
	ErrDataSizeMismatch     = newError(KindFormat, "data section size does not match the header")
)

// IO errors.
var (
	ErrShortRead  = newError(KindIO, "short read")
	ErrShortWrite = newError(KindIO, "short write")
	ErrFileExists = newError(KindIO, "destination file already exists")
	ErrNotFound   = newError(KindIO, "catalog entry not found")
)

// ErrInternal is reserved for broken invariants; no code path is expected to return it.
var ErrInternal = newError(KindInternal, "internal error")

// KindOf returns the Kind of the first fitsio sentinel found in err's chain.
func KindOf(err error) Kind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}

	return KindUnknown
}

// IsFormat reports whether err wraps a format error.
func IsFormat(err error) bool {
	return KindOf(err) == KindFormat
}

// IsIO reports whether err wraps an IO error.
func IsIO(err error) bool {
	return KindOf(err) == KindIO
}
