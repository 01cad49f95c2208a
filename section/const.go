package section

const (
	// BlockSize is the FITS logical record size in bytes.
	BlockSize = 2880
	// CardSize is the length of one header card.
	CardSize = 80
	// CardsPerBlock is the number of cards in one block.
	CardsPerBlock = BlockSize / CardSize
	// KeywordSize is the width of the keyword columns.
	KeywordSize = 8
	// ValueOffset is the 0-based byte offset of a card value.
	ValueOffset = 10
	// ValueWidth is the number of value columns.
	ValueWidth = CardSize - ValueOffset
	// TextOffset is the 0-based byte offset of HISTORY/COMMENT text.
	TextOffset = KeywordSize
	// TextWidth is the number of text columns of a repeating card.
	TextWidth = CardSize - TextOffset
	// MinFreeCards is the number of cards that must follow END before an insert
	// can proceed without growing the buffer.
	MinFreeCards = 4
)

const (
	commentWidth = 47 // width of the comment written by Add
	fieldWidth   = 20 // width of fixed-format numeric and logical values
	stringWidth  = 69 // width of string and comment values
	unpackLines  = 10 // growth increment, in lines, of unpacked multiline text
)

// Keywords recognized by the header mapper.
const (
	KeywordSimple   = "SIMPLE"
	KeywordXtension = "XTENSION"
	KeywordBitPix   = "BITPIX"
	KeywordNAxis    = "NAXIS"
	KeywordBScale   = "BSCALE"
	KeywordBZero    = "BZERO"
	KeywordEpoch    = "EPOCH"
	KeywordDataMin  = "DATAMIN"
	KeywordDataMax  = "DATAMAX"
	KeywordHistory  = "HISTORY"
	KeywordComment  = "COMMENT"
	KeywordEnd      = "END"
)

// IsRepeating reports whether keyword is a repeating free-text keyword (HISTORY or COMMENT).
func IsRepeating(keyword string) bool {
	return keyword == KeywordHistory || keyword == KeywordComment
}
