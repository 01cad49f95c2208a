package pool

import (
	"io"
	"sync"
)

const (
	// BlockSize is the FITS logical record size. Data buffers grow in whole blocks.
	BlockSize = 2880

	DataBufferDefaultSize  = BlockSize * 16  // 45KiB
	DataBufferMaxThreshold = BlockSize * 512 // ~1.4MiB
)

// ByteBuffer is a growable byte slice whose capacity is kept block aligned.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with at least defaultSize bytes of capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, AlignBlock(defaultSize)),
	}
}

// AlignBlock rounds n up to the next multiple of BlockSize. Zero stays zero.
func AlignBlock(n int) int {
	if n <= 0 {
		return 0
	}

	return (n + BlockSize - 1) / BlockSize * BlockSize
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
// The new bytes are not cleared.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
// Capacity grows to a block multiple, by at least a quarter of the current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := max(requiredBytes, cap(bb.B)/4)
	newBuf := make([]byte, len(bb.B), AlignBlock(len(bb.B)+growBy))
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// PadToBlock appends zero bytes up to the next block boundary. An aligned buffer is unchanged.
// It returns the number of bytes appended.
func (bb *ByteBuffer) PadToBlock() int {
	pad := AlignBlock(len(bb.B)) - len(bb.B)
	if pad == 0 {
		return 0
	}

	start := len(bb.B)
	bb.ExtendOrGrow(pad)
	clear(bb.B[start:])

	return pad
}

// Write appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops buffers above maxThreshold
// instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given default capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var dataDefaultPool = NewByteBufferPool(DataBufferDefaultSize, DataBufferMaxThreshold)

// GetDataBuffer retrieves a ByteBuffer from the data section pool.
func GetDataBuffer() *ByteBuffer {
	return dataDefaultPool.Get()
}

// PutDataBuffer returns a ByteBuffer to the data section pool.
func PutDataBuffer(bb *ByteBuffer) {
	dataDefaultPool.Put(bb)
}
