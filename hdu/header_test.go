package hdu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/section"
)

// ==============================================================================
// Helper Functions

// rawHeader builds header blocks from card images, appending END.
func rawHeader(cards ...string) []byte {
	var sb strings.Builder
	for _, c := range cards {
		fmt.Fprintf(&sb, "%-80s", c)
	}
	fmt.Fprintf(&sb, "%-80s", "END")

	blocks := (sb.Len() + section.BlockSize - 1) / section.BlockSize
	sb.WriteString(strings.Repeat(" ", blocks*section.BlockSize-sb.Len()))

	return []byte(sb.String())
}

func mustParse(t *testing.T, cards ...string) *section.HeaderBuffer {
	t.Helper()
	h, err := section.ParseHeaderBuffer(rawHeader(cards...))
	require.NoError(t, err)

	return h
}

func hasCard(h *section.HeaderBuffer, keyword string) bool {
	_, ok := h.Find(keyword)
	return ok
}

// ==============================================================================
// LoadImageHeader

func TestLoadImageHeader(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                   16",
		"NAXIS   =                    2",
		"NAXIS1  =                  512",
		"NAXIS2  =                  256",
		"BSCALE  =      2.000000000E+00",
		"BZERO   =      3.276800000E+04",
		"CRPIX1  =      2.560000000E+02",
		"CRVAL2  =     -1.250000000E+01",
		"CDELT1  =     -2.500000000E-04",
		"CROTA2  =      4.500000000E+01",
		"CTYPE1  = 'RA---TAN'",
		"CTYPE2  = 'DEC--TAN'",
		"EPOCH   =      2.000000000E+03",
		"DATAMIN =     -1.000000000E+00",
		"DATAMAX =      1.000000000E+00",
	)

	ih, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.Equal(2, ih.NAxis)
	require.Equal([MaxAxes]int{512, 256, 0}, ih.Axes)
	require.Equal(format.BitPixInt16, ih.BitPix)
	require.Equal(2.0, ih.BScale)
	require.Equal(32768.0, ih.BZero)
	require.Equal([MaxAxes]float64{256, 0, 0}, ih.CRPix)
	require.Equal([MaxAxes]float64{0, -12.5, 0}, ih.CRVal)
	require.Equal([MaxAxes]float64{-2.5e-4, 0, 0}, ih.CDelt)
	require.Equal([2]float64{0, 45}, ih.CRota)
	require.Equal([2]string{"RA---TAN", "DEC--TAN"}, ih.CType)
	require.Equal(2000.0, ih.Epoch)
	require.Equal(-1.0, ih.DataMin)
	require.Equal(1.0, ih.DataMax)

	require.Equal(512*256, ih.PixelCount())
	require.Equal(512*256*2, ih.DataSize())
	require.Equal(92*section.BlockSize, ih.PaddedDataSize())
}

func TestLoadImageHeader_Defaults(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                  -32",
		"NAXIS   =                    1",
	)

	ih, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.Equal(1, ih.NAxis)
	require.Zero(ih.Axes[0])
	require.Equal(1.0, ih.BScale)
	require.Zero(ih.BZero)
	require.Zero(ih.Epoch)
	require.Equal([2]string{}, ih.CType)
	require.Zero(ih.PixelCount())
}

func TestLoadImageHeader_IgnoresCardsBeyondNAxis(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                   10",
		"NAXIS2  =                   20",
		"CRPIX2  =                  5.0",
		"CTYPE2  = 'DEC--TAN'",
	)

	ih, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.Equal([MaxAxes]int{10, 0, 0}, ih.Axes)
	require.Zero(ih.CRPix[1])
	require.Empty(ih.CType[1])
}

func TestLoadImageHeader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  error
	}{
		{
			name:  "four_axes",
			cards: []string{"SIMPLE  =                    T", "BITPIX  =                   16", "NAXIS   =                    4"},
			want:  errs.ErrUnsupportedAxisCount,
		},
		{
			name:  "missing_naxis",
			cards: []string{"SIMPLE  =                    T", "BITPIX  =                   16"},
			want:  errs.ErrUnsupportedAxisCount,
		},
		{
			name:  "zero_axes",
			cards: []string{"SIMPLE  =                    T", "BITPIX  =                   16", "NAXIS   =                    0"},
			want:  errs.ErrUnsupportedAxisCount,
		},
		{
			name:  "missing_bitpix",
			cards: []string{"SIMPLE  =                    T", "NAXIS   =                    2"},
			want:  errs.ErrMissingKeyword,
		},
		{
			name:  "unsupported_bitpix",
			cards: []string{"SIMPLE  =                    T", "BITPIX  =                   12", "NAXIS   =                    2"},
			want:  errs.ErrUnsupportedBitPix,
		},
		{
			name:  "malformed_axis",
			cards: []string{"SIMPLE  =                    T", "BITPIX  =                   16", "NAXIS   =                    1", "NAXIS1  =                 many"},
			want:  errs.ErrInvalidValue,
		},
		{
			name:  "zero_bscale",
			cards: []string{"SIMPLE  =                    T", "BITPIX  =                   16", "NAXIS   =                    1", "BSCALE  =                  0.0"},
			want:  errs.ErrInvalidScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustParse(t, tt.cards...)
			_, err := LoadImageHeader(h, h.Blocks())
			require.ErrorIs(t, err, tt.want)
			require.True(t, errs.IsFormat(err))
		})
	}
}

// ==============================================================================
// Store

func TestStore_RoundTrip(t *testing.T) {
	require := require.New(t)

	ih, err := NewImageHeader(format.BitPixInt32, 64, 32, 4)
	require.NoError(err)
	ih.BScale = 0.5
	ih.BZero = -100
	ih.CRPix = [MaxAxes]float64{32, 16, 1}
	ih.CRVal = [MaxAxes]float64{150.25, 2.5, 0}
	ih.CDelt = [MaxAxes]float64{-0.001, 0.001, 1}
	ih.CRota = [2]float64{0, 12.5}
	ih.CType = [2]string{"RA---TAN", "DEC--TAN"}
	ih.Epoch = 2000
	ih.DataMin = -3
	ih.DataMax = 7

	h := section.NewHeaderBuffer()
	require.NoError(ih.Store(h))
	require.Zero(h.Len() % section.BlockSize)

	got, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.Equal(ih, got)
}

func TestStore_MandatoryOrder(t *testing.T) {
	require := require.New(t)

	ih, err := NewImageHeader(format.BitPixFloat32, 4, 3)
	require.NoError(err)

	h := section.NewHeaderBuffer()
	require.NoError(ih.Store(h))

	keys := []string{}
	for _, c := range h.Cards() {
		keys = append(keys, c.Keyword())
	}
	require.Equal([]string{"SIMPLE", "BITPIX", "NAXIS", "NAXIS1", "NAXIS2"}, keys)

	end, ok := h.Find(section.KeywordEnd)
	require.True(ok)
	require.Equal(len(keys), end)
}

func TestStore_SkipsSuppressedCardsOnNewHeader(t *testing.T) {
	require := require.New(t)

	ih, err := NewImageHeader(format.BitPixInt16, 10, 10)
	require.NoError(err)
	ih.CType = [2]string{"RA---TAN", "X"}
	ih.CRPix[0] = 1e-9
	ih.DataMin, ih.DataMax = 5, 5

	h := section.NewHeaderBuffer()
	require.NoError(ih.Store(h))

	for _, keyword := range []string{"BSCALE", "BZERO", "CRPIX1", "CTYPE1", "CTYPE2", "DATAMIN", "DATAMAX"} {
		require.False(hasCard(h, keyword), keyword)
	}
}

func TestStore_RewritesPresentCards(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                   16",
		"NAXIS   =                    2",
		"NAXIS1  =                   10",
		"NAXIS2  =                   10",
		"CRPIX1  =      1.000000000E+00",
		"CTYPE1  = 'RA---TAN'",
		"CTYPE2  = 'DEC--TAN'",
		"DATAMIN =      0.000000000E+00",
		"DATAMAX =      1.000000000E+00",
	)

	ih, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	ih.CType[1] = "X"
	ih.CRPix[0] = 1e-9
	ih.DataMin, ih.DataMax = 5, 5

	require.NoError(ih.Store(h))

	got, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.Equal(ih, got)
}

func TestStore_DeletesResetCards(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                   16",
		"NAXIS   =                    3",
		"NAXIS1  =                   10",
		"NAXIS2  =                   10",
		"NAXIS3  =                   10",
		"BSCALE  =      2.000000000E+00",
		"BZERO   =      1.000000000E+00",
		"CRPIX1  =      1.000000000E+00",
		"CTYPE1  = 'RA---TAN'",
		"DATAMAX =      1.000000000E+00",
	)

	ih, err := NewImageHeader(format.BitPixInt16, 10, 10)
	require.NoError(err)
	require.NoError(ih.Store(h))

	for _, keyword := range []string{"NAXIS3", "BSCALE", "BZERO", "CRPIX1", "CTYPE1", "DATAMAX"} {
		require.False(hasCard(h, keyword), keyword)
	}

	got, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.Equal(ih, got)
}

func TestStore_LoadStoreLoad(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
	}{
		{
			name: "single_axis_type_and_constant_range",
			cards: []string{
				"SIMPLE  =                    T",
				"BITPIX  =                  -32",
				"NAXIS   =                    1",
				"NAXIS1  =                   16",
				"CTYPE1  = 'WAVE'",
				"DATAMIN =      2.000000000E+00",
				"DATAMAX =      2.000000000E+00",
			},
		},
		{
			name: "tiny_coordinates",
			cards: []string{
				"SIMPLE  =                    T",
				"BITPIX  =                   16",
				"NAXIS   =                    2",
				"NAXIS1  =                    4",
				"NAXIS2  =                    4",
				"CRPIX1  =      1.000000000E-09",
				"CDELT2  =     -5.000000000E-10",
				"CROTA2  =      2.000000000E-08",
				"EPOCH   =      1.000000000E-09",
			},
		},
		{
			name: "identity_scale_card",
			cards: []string{
				"SIMPLE  =                    T",
				"BITPIX  =                   16",
				"NAXIS   =                    1",
				"NAXIS1  =                    4",
				"BSCALE  =      1.000000000E+00",
				"BZERO   =      0.000000000E+00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustParse(t, tt.cards...)

			loaded, err := LoadImageHeader(h, h.Blocks())
			require.NoError(t, err)
			require.NoError(t, loaded.Store(h))

			reloaded, err := LoadImageHeader(h, h.Blocks())
			require.NoError(t, err)
			require.Equal(t, loaded, reloaded)
		})
	}
}

func TestStore_KeepsUnreadCardsBeyondNAxis(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"NAXIS   =                    1",
		"NAXIS1  =                   10",
		"CRPIX2  =      5.000000000E+00",
		"CTYPE2  = 'DEC--TAN'",
	)

	ih, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	require.NoError(ih.Store(h))

	require.True(hasCard(h, "CRPIX2"))
	require.True(hasCard(h, "CTYPE2"))
}

func TestStore_BScaleOnlyWithOffset(t *testing.T) {
	require := require.New(t)

	ih, err := NewImageHeader(format.BitPixInt16, 2)
	require.NoError(err)
	ih.BZero = 32768

	h := section.NewHeaderBuffer()
	require.NoError(ih.Store(h))
	require.True(hasCard(h, "BSCALE"))
	require.True(hasCard(h, "BZERO"))

	scale, ok, err := h.ReadFloat("BSCALE", 0)
	require.NoError(err)
	require.True(ok)
	require.Equal(1.0, scale)
}

func TestStore_KeepsUnknownCards(t *testing.T) {
	require := require.New(t)

	h := mustParse(t,
		"SIMPLE  =                    T",
		"BITPIX  =                   16",
		"NAXIS   =                    1",
		"NAXIS1  =                    8",
		"TELESCOP= 'KPNO 4m'            / observatory",
	)

	ih, err := LoadImageHeader(h, h.Blocks())
	require.NoError(err)
	ih.BitPix = format.BitPixFloat32
	require.NoError(ih.Store(h))

	telescope, ok, err := h.ReadString("TELESCOP", 0)
	require.NoError(err)
	require.True(ok)
	require.Equal("KPNO 4m", telescope)

	bitpix, _, err := h.ReadInt("BITPIX", 0)
	require.NoError(err)
	require.Equal(int64(-32), bitpix)
}

func TestNewImageHeader_Errors(t *testing.T) {
	_, err := NewImageHeader(format.BitPixInt16)
	require.ErrorIs(t, err, errs.ErrUnsupportedAxisCount)

	_, err = NewImageHeader(format.BitPixInt16, 1, 2, 3, 4)
	require.ErrorIs(t, err, errs.ErrUnsupportedAxisCount)

	_, err = NewImageHeader(format.BitPix(24), 4)
	require.ErrorIs(t, err, errs.ErrUnsupportedBitPix)

	_, err = NewImageHeader(format.BitPixInt16, -4)
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	_, err = NewImageHeader(format.BitPixFloat64, 1<<40, 1<<40)
	require.ErrorIs(t, err, errs.ErrInvalidValue)
	require.True(t, errs.IsFormat(err))
}

func TestImageHeader_PixelCountOverflow(t *testing.T) {
	require := require.New(t)

	ih := ImageHeader{NAxis: 2, Axes: [MaxAxes]int{1 << 62, 2}, BitPix: format.BitPixUint8, BScale: 1}
	require.ErrorIs(ih.Validate(), errs.ErrInvalidValue)
	require.Zero(ih.PixelCount())
	require.Zero(ih.DataSize())

	ih.Axes = [MaxAxes]int{1 << 31, 1 << 30}
	ih.BitPix = format.BitPixFloat64
	require.ErrorIs(ih.Validate(), errs.ErrInvalidValue)
	require.Equal(1<<61, ih.PixelCount())
}

func TestImageHeader_Codec(t *testing.T) {
	require := require.New(t)

	ih, err := NewImageHeader(format.BitPixInt16, 4)
	require.NoError(err)
	ih.BScale, ih.BZero = 2, 10

	codec, err := ih.Codec()
	require.NoError(err)
	require.Equal(format.BitPixInt16, codec.BitPix())
	require.Equal(2.0, codec.Scale())
	require.Equal(10.0, codec.Zero())
	require.Equal(ih.DataSize(), codec.DataSize(ih.PixelCount()))
	require.Equal(ih.PaddedDataSize(), codec.PaddedSize(ih.PixelCount()))
}
