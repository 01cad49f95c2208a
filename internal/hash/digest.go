// Package hash computes the xxHash64 digests that identify data sections in
// `fitsio info` output and in catalog entries.
package hash

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest computes the xxHash64 of data.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DigestReader computes the xxHash64 of everything read from r.
func DigestReader(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, fmt.Errorf("digest: %w", err)
	}

	return d.Sum64(), nil
}

// Hex formats a digest as 16 lowercase hex digits.
func Hex(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
