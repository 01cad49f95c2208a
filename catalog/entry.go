package catalog

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/arloliu/fitsio/hdu"
	"github.com/arloliu/fitsio/internal/hash"
	"github.com/arloliu/fitsio/section"
)

// HeaderSummary is the subset of an image header kept in the catalog.
type HeaderSummary struct {
	NAxis   int       `json:"naxis"`
	Axes    []int     `json:"axes"`
	BitPix  int       `json:"bitpix"`
	BScale  float64   `json:"bscale"`
	BZero   float64   `json:"bzero"`
	CType   [2]string `json:"ctype,omitempty"`
	Epoch   float64   `json:"epoch,omitempty"`
	DataMin float64   `json:"datamin,omitempty"`
	DataMax float64   `json:"datamax,omitempty"`
}

// Entry is the catalog record of one file.
type Entry struct {
	ID        ksuid.KSUID   `json:"id"`
	Path      string        `json:"path"`
	Header    HeaderSummary `json:"header"`
	Digest    string        `json:"digest"`
	Cards     int           `json:"cards"`
	Size      int64         `json:"size"`
	IndexedAt time.Time     `json:"indexed_at"`
}

// NewEntry summarizes img, read from path, into an entry without an ID.
func NewEntry(path string, img *hdu.Image) Entry {
	ih := img.Header

	cards := 0
	if img.Cards != nil {
		if end, ok := img.Cards.Find(section.KeywordEnd); ok {
			cards = end
		}
	}

	return Entry{
		Path: path,
		Header: HeaderSummary{
			NAxis:   ih.NAxis,
			Axes:    append([]int(nil), ih.Axes[:ih.NAxis]...),
			BitPix:  int(ih.BitPix),
			BScale:  ih.BScale,
			BZero:   ih.BZero,
			CType:   ih.CType,
			Epoch:   ih.Epoch,
			DataMin: ih.DataMin,
			DataMax: ih.DataMax,
		},
		Digest: hash.Hex(img.Digest),
		Cards:  cards,
		Size:   int64(ih.DataSize()),
	}
}
