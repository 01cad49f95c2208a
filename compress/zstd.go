package compress

// ZstdCompressor produces standard Zstandard frames. The implementation is chosen at
// build time: klauspost/compress by default, valyala/gozstd with cgo and the gozstd tag.
// Both read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(fitsBytes)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
