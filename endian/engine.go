// Package endian provides byte order utilities for the FITS data section.
//
// FITS fixes the on-disk byte order of every numeric pixel to big endian, independent of the
// machine that wrote the file. This package combines the encoding/binary ByteOrder and
// AppendByteOrder interfaces into a single EndianEngine, detects the host order, and provides
// in-place byte swap primitives used to normalize raw buffers between host and disk order.
//
// # Basic Usage
//
//	disk := endian.GetDiskEngine()          // always binary.BigEndian
//	if endian.NeedsSwap() {
//	    endian.Swap4(raw)                   // raw now holds host order 32-bit words
//	}
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. Swap functions mutate only the
// slice passed to them.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNativeEngine()

// detectNativeEngine uses a fixed integer value to determine the host's byte order.
func detectNativeEngine() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return nativeEngine
}

func IsNativeLittleEndian() bool {
	return nativeEngine == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return nativeEngine == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// NeedsSwap reports whether raw disk buffers must be byte swapped before they can be read
// with the native engine.
func NeedsSwap() bool {
	return !CompareNativeEndian(GetDiskEngine())
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	return nativeEngine
}

// GetDiskEngine returns the engine of the FITS on-disk representation (big endian).
func GetDiskEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
