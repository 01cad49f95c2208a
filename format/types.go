package format

import "strings"

type (
	// BitPix is the FITS BITPIX value selecting the on-disk pixel encoding.
	BitPix int

	// CompressionType selects the transport compression applied to a whole serialized file.
	CompressionType uint8
)

const (
	BitPixUint8   BitPix = 8   // BitPixUint8 represents unsigned 8-bit integer pixels.
	BitPixInt16   BitPix = 16  // BitPixInt16 represents signed 16-bit integer pixels.
	BitPixInt32   BitPix = 32  // BitPixInt32 represents signed 32-bit integer pixels.
	BitPixFloat32 BitPix = -32 // BitPixFloat32 represents IEEE 754 single precision pixels.
	BitPixFloat64 BitPix = -64 // BitPixFloat64 represents IEEE 754 double precision pixels.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

// Valid reports whether b is one of the five BITPIX values defined by FITS.
func (b BitPix) Valid() bool {
	switch b {
	case BitPixUint8, BitPixInt16, BitPixInt32, BitPixFloat32, BitPixFloat64:
		return true
	default:
		return false
	}
}

// Width returns the number of bytes per pixel, or 0 for an invalid BITPIX.
func (b BitPix) Width() int {
	if !b.Valid() {
		return 0
	}
	if b < 0 {
		return int(-b) / 8
	}

	return int(b) / 8
}

// IsFloat reports whether b is a floating point encoding.
func (b BitPix) IsFloat() bool {
	return b == BitPixFloat32 || b == BitPixFloat64
}

func (b BitPix) String() string {
	switch b {
	case BitPixUint8:
		return "Uint8"
	case BitPixInt16:
		return "Int16"
	case BitPixInt32:
		return "Int32"
	case BitPixFloat32:
		return "Float32"
	case BitPixFloat64:
		return "Float64"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix used for c, empty for CompressionNone.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionForPath infers the transport compression from a file name suffix.
func CompressionForPath(path string) CompressionType {
	lower := strings.ToLower(path)
	for _, c := range []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.HasSuffix(lower, c.Extension()) {
			return c
		}
	}

	return CompressionNone
}

// ParseCompression parses a compression name as used in configuration files.
// It returns false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
