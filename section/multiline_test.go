package section

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsio/errs"
)

func padLine(s string) string {
	return fmt.Sprintf("%-72s", s)
}

func TestMultilineField_Append(t *testing.T) {
	require := require.New(t)

	f := NewMultilineField(KeywordComment)
	require.Equal(KeywordComment, f.Keyword())
	require.Zero(f.Cap())

	n, err := f.Append("first note")
	require.NoError(err)
	require.Equal(10, n)
	require.Equal("first note", f.Text())
	require.Equal(TextWidth+1, f.Cap())

	n, err = f.Append("second note")
	require.NoError(err)
	require.Equal(11, n)
	require.Equal(padLine("first note")+"second note", f.Text())
	require.Equal(2*TextWidth+1, f.Cap())
	require.Equal(2, f.Lines())
}

func TestMultilineField_AppendGrowsToExactLines(t *testing.T) {
	require := require.New(t)

	f := NewMultilineField(KeywordHistory)
	_, err := f.Append(strings.Repeat("a", 100))
	require.NoError(err)
	require.Equal(100, f.Len())
	require.Equal(2*TextWidth+1, f.Cap())

	// An exactly full line is not padded further.
	g := NewMultilineField(KeywordHistory)
	_, err = g.Append(strings.Repeat("b", TextWidth))
	require.NoError(err)
	_, err = g.Append("c")
	require.NoError(err)
	require.Equal(strings.Repeat("b", TextWidth)+"c", g.Text())
	require.Equal(2*TextWidth+1, g.Cap())
}

func TestMultilineField_AppendReusesCapacity(t *testing.T) {
	require := require.New(t)

	h := NewHeaderBuffer()
	f := NewMultilineField(KeywordHistory)
	_, err := f.Append("one")
	require.NoError(err)
	packed, err := Pack(h, f)
	require.NoError(err)

	unpacked := UnpackField(packed, packed.Len(), KeywordHistory)
	require.Equal(unpackLines*TextWidth+1, unpacked.Cap())

	_, err = unpacked.Append("two")
	require.NoError(err)
	require.Equal(unpackLines*TextWidth+1, unpacked.Cap(), "two lines fit the unpack allocation")
	require.Equal(padLine("one")+"two", unpacked.Text())
}

func TestMultilineField_AppendEdgeCases(t *testing.T) {
	require := require.New(t)

	f := NewMultilineField(KeywordHistory)
	n, err := f.Append("")
	require.NoError(err)
	require.Zero(n)
	require.Zero(f.Cap())

	_, err = f.Append("bell\a")
	require.ErrorIs(err, errs.ErrInvalidText)
	require.Zero(f.Len())
}

func TestUnpackField_CapacityIncrements(t *testing.T) {
	tests := []struct {
		lines int
		cap   int
	}{
		{0, 10*TextWidth + 1},
		{3, 10*TextWidth + 1},
		{9, 10*TextWidth + 1},
		{10, 20*TextWidth + 1},
		{12, 20*TextWidth + 1},
		{20, 30*TextWidth + 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d lines", tt.lines), func(t *testing.T) {
			f := NewMultilineField(KeywordHistory)
			for i := range tt.lines {
				_, err := f.Append(fmt.Sprintf("line %d", i))
				require.NoError(t, err)
			}
			h, err := Pack(NewHeaderBuffer(), f)
			require.NoError(t, err)

			unpacked := UnpackField(h, h.Len(), KeywordHistory)
			require.Equal(t, tt.cap, unpacked.Cap())
			require.Equal(t, tt.lines*TextWidth, unpacked.Len())
			require.Equal(t, tt.lines, unpacked.Lines())
		})
	}
}

func TestUnpackField_BoundedByHeaderSize(t *testing.T) {
	require := require.New(t)

	f := NewMultilineField(KeywordHistory)
	for i := range 3 {
		_, err := f.Append(fmt.Sprintf("step %d", i))
		require.NoError(err)
	}
	h, err := Pack(NewHeaderBuffer(), f)
	require.NoError(err)

	first, ok := h.Find(KeywordHistory)
	require.True(ok)

	unpacked := UnpackField(h, (first+2)*CardSize, KeywordHistory)
	require.Equal(padLine("step 0")+padLine("step 1"), unpacked.Text())
}

// ==============================================================================
// Pack

func TestPack_CommentScenario(t *testing.T) {
	require := require.New(t)

	f := NewMultilineField(KeywordComment)
	_, err := f.Append("first note")
	require.NoError(err)
	_, err = f.Append("second note")
	require.NoError(err)

	packed, err := Pack(NewHeaderBuffer(), NewMultilineField(KeywordHistory), f)
	require.NoError(err)
	requireBlockAligned(t, packed)

	unpacked := UnpackField(packed, packed.Len(), KeywordComment)
	require.Equal(padLine("first note")+padLine("second note"), unpacked.Text())
	require.Equal(padLine("first note")+"second note", strings.TrimRight(unpacked.Text(), " "))
}

func TestPack_HistoryRoundTripPadsToLineBoundary(t *testing.T) {
	require := require.New(t)

	text := strings.Repeat("0123456789", 10)
	f := NewMultilineField(KeywordHistory)
	_, err := f.Append(text)
	require.NoError(err)

	packed, err := Pack(NewHeaderBuffer(), f)
	require.NoError(err)

	unpacked := UnpackField(packed, packed.Len(), KeywordHistory)
	require.Equal(text+strings.Repeat(" ", 2*TextWidth-len(text)), unpacked.Text())

	repacked, err := Pack(packed, unpacked)
	require.NoError(err)
	require.Equal(packed.Bytes(), repacked.Bytes())
}

func TestPack_Layout(t *testing.T) {
	require := require.New(t)

	h := NewHeaderBuffer()
	require.NoError(h.Write("OBJECT", StringValue("M31")))
	hist := NewMultilineField(KeywordHistory)
	_, err := hist.Append("calibrated")
	require.NoError(err)

	packed, err := Pack(h, hist)
	require.NoError(err)

	var keywords []string
	for _, c := range packed.Cards() {
		keywords = append(keywords, c.Keyword())
	}
	require.Equal([]string{"SIMPLE", "BITPIX", "NAXIS", "OBJECT", "HISTORY"}, keywords)
	require.Equal(padCard("HISTORY calibrated"), []byte(packed.Card(4)))
	require.Equal(padCard("END"), []byte(packed.Card(5)))
	for i := 6; i < packed.CardCount(); i++ {
		require.True(packed.Card(i).IsBlank())
		require.Equal(byte(' '), packed.Card(i)[0])
	}

	_, ok := h.Find(KeywordHistory)
	require.False(ok, "source header is not modified")
}

func TestPack_ReplacesExistingRepeatingCards(t *testing.T) {
	require := require.New(t)

	hist := NewMultilineField(KeywordHistory)
	_, err := hist.Append("first")
	require.NoError(err)
	packed, err := Pack(NewHeaderBuffer(), hist)
	require.NoError(err)

	unpacked := UnpackField(packed, packed.Len(), KeywordHistory)
	_, err = unpacked.Append("second")
	require.NoError(err)
	require.NoError(packed.Write("EPOCH", FloatValue(2000)))

	repacked, err := Pack(packed, unpacked)
	require.NoError(err)

	var keywords []string
	for _, c := range repacked.Cards() {
		keywords = append(keywords, c.Keyword())
	}
	require.Equal([]string{"SIMPLE", "BITPIX", "NAXIS", "EPOCH", "HISTORY", "HISTORY"}, keywords)
}

func TestPack_GrowsToFitAllCards(t *testing.T) {
	require := require.New(t)

	f := NewMultilineField(KeywordHistory)
	for i := range 40 {
		_, err := f.Append(fmt.Sprintf("entry %d", i))
		require.NoError(err)
	}

	packed, err := Pack(NewHeaderBuffer(), f)
	require.NoError(err)
	requireBlockAligned(t, packed)
	// 3 mandatory cards + 40 history cards + END
	require.Equal(2, packed.Blocks())

	end, ok := packed.Find(KeywordEnd)
	require.True(ok)
	require.Equal(43, end)
}

func TestPack_ExactBlockFit(t *testing.T) {
	f := NewMultilineField(KeywordHistory)
	for i := range CardsPerBlock - 4 {
		_, err := f.Append(fmt.Sprintf("entry %d", i))
		require.NoError(t, err)
	}

	packed, err := Pack(NewHeaderBuffer(), f)
	require.NoError(t, err)
	require.Equal(t, 1, packed.Blocks())

	end, _ := packed.Find(KeywordEnd)
	require.Equal(t, CardsPerBlock-1, end)
}

func TestPack_Errors(t *testing.T) {
	require := require.New(t)

	_, err := Pack(NewHeaderBuffer(), NewMultilineField("OBJECT"))
	require.ErrorIs(err, errs.ErrInvalidKeyword)

	_, err = Pack(&HeaderBuffer{buf: blankBlocks(1)})
	require.ErrorIs(err, errs.ErrMissingEndCard)
}
