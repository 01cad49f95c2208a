// Package compress provides the transport codecs applied to whole serialized FITS
// files, such as m31.fits.zst.
//
// Transport compression wraps the complete FITS byte stream. It is not FITS tile
// compression: once decompressed, the header and data section are unchanged.
//
// Supported algorithms:
//   - None: bytes are passed through
//   - Zstd: Zstandard frames, klauspost/compress by default or valyala/gozstd when
//     built with cgo and the gozstd build tag
//   - S2: S2 stream format, readable by the s2d tool
//   - LZ4: LZ4 frame format, readable by the lz4 tool
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionForPath(path))
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(fitsBytes)
//
// All built-in codecs are safe for concurrent use.
package compress
