package section

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/arloliu/fitsio/errs"
)

// Pack rebuilds a header from h and the given multiline fields.
//
// Every card before END whose keyword is not HISTORY or COMMENT is copied verbatim
// and in order. Each field then follows as a run of cards carrying its keyword and
// 72 columns of its text, the last chunk padded with spaces. END is appended and the
// remainder of the final block is blank. The result is the smallest number of blocks
// that holds all cards. h is not modified.
//
// Pack must be the last mutation before the header is persisted: it is the only
// operation that reconciles the logical field text with the packed cards.
func Pack(h *HeaderBuffer, fields ...*MultilineField) (*HeaderBuffer, error) {
	end, ok := h.Find(KeywordEnd)
	if !ok {
		return nil, errs.ErrMissingEndCard
	}

	cards := make([]Card, 0, end)
	for i := range end {
		cards = append(cards, h.card(i))
	}
	cards = lo.Filter(cards, func(c Card, _ int) bool {
		return !IsRepeating(c.Keyword())
	})

	for _, f := range fields {
		if f == nil {
			continue
		}
		if !IsRepeating(f.keyword) {
			return nil, fmt.Errorf("pack field %q: %w", f.keyword, errs.ErrInvalidKeyword)
		}

		for _, chunk := range lo.Chunk(f.text, TextWidth) {
			cards = append(cards, Card(padCard(fmt.Sprintf("%-8s%s", f.keyword, chunk))))
		}
	}
	cards = append(cards, Card(endCard))

	blocks := (len(cards) + CardsPerBlock - 1) / CardsPerBlock
	packed := &HeaderBuffer{buf: blankBlocks(blocks)}
	for i, c := range cards {
		copy(packed.card(i), c)
	}

	return packed, nil
}
