// Package encoding converts FITS data sections between their on-disk representation
// and flat numeric buffers.
//
// A data section holds N pixels in one of five encodings selected by BITPIX:
// unsigned 8-bit, signed 16-bit and 32-bit integers, and IEEE 754 single and double
// precision floats. The on-disk byte order is always big endian. Physical values are
// obtained with the affine transform
//
//	physical = raw*BSCALE + BZERO
//
// and encoded back with raw = (physical - BZERO) / BSCALE, rounded half away from
// zero and saturated for the integer encodings. Encoded sections are zero padded to
// a multiple of the 2880-byte block size.
//
// # Usage
//
//	codec, err := encoding.NewCodec(format.BitPixInt16, encoding.WithScale(0.5, 32768))
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Encode(pixels)
//	...
//	pixels, err = codec.Decode(raw, len(pixels))
//
// A Codec is immutable after construction and can be shared, but Decode swaps the
// raw bytes in place, so the same raw slice must not be decoded concurrently.
package encoding
