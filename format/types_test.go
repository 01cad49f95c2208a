package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitPixWidth(t *testing.T) {
	tests := map[BitPix]int{
		BitPixUint8:   1,
		BitPixInt16:   2,
		BitPixInt32:   4,
		BitPixFloat32: 4,
		BitPixFloat64: 8,
		BitPix(24):    0,
		BitPix(-16):   0,
	}
	for bitpix, width := range tests {
		require.Equal(t, width, bitpix.Width(), "BITPIX %d", int(bitpix))
		require.Equal(t, width != 0, bitpix.Valid(), "BITPIX %d", int(bitpix))
	}
}

func TestBitPixIsFloat(t *testing.T) {
	require.True(t, BitPixFloat32.IsFloat())
	require.True(t, BitPixFloat64.IsFloat())
	require.False(t, BitPixInt32.IsFloat())
	require.Equal(t, "Unknown", BitPix(12).String())
}

func TestCompressionForPath(t *testing.T) {
	require.Equal(t, CompressionZstd, CompressionForPath("m31.fits.zst"))
	require.Equal(t, CompressionS2, CompressionForPath("m31.FITS.S2"))
	require.Equal(t, CompressionLZ4, CompressionForPath("/data/m31.fits.lz4"))
	require.Equal(t, CompressionNone, CompressionForPath("m31.fits"))
}

func TestParseCompression(t *testing.T) {
	c, ok := ParseCompression("ZSTD")
	require.True(t, ok)
	require.Equal(t, CompressionZstd, c)

	c, ok = ParseCompression("")
	require.True(t, ok)
	require.Equal(t, CompressionNone, c)

	_, ok = ParseCompression("gzip")
	require.False(t, ok)
}
