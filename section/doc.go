// Package section implements the FITS header byte layout.
//
// A header is a sequence of 2880-byte blocks, each holding thirty-six 80-byte cards.
// Columns 1-8 of a card hold a left-justified, space-padded keyword. Value cards carry
// '=' in column 9 and the formatted value from column 11, optionally followed by '/'
// and a free-text comment. HISTORY and COMMENT cards carry 72 columns of raw text
// starting at column 9. An END card marks the logical end of the header; the cards
// after it, up to the block boundary, are padding.
//
// # Components
//
//   - HeaderBuffer: owns the header bytes, searches cards by keyword and grows in whole blocks.
//   - Card writing: Add and Write insert and update value cards; the Read* methods parse them back.
//   - Value: the closed set of typed card values and their fixed-column formatting.
//   - MultilineField: the unbounded logical text of a repeating keyword, kept apart from the
//     packed header until Pack rebuilds the header with it.
//
// Every mutating operation leaves the buffer length a multiple of BlockSize.
package section
