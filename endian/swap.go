package endian

import "fmt"

// Swap2 reverses the byte order of every 2-byte word in buf in place.
// A trailing partial word is left untouched.
func Swap2(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}

// Swap4 reverses the byte order of every 4-byte word in buf in place.
// A trailing partial word is left untouched.
func Swap4(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+3] = buf[i+3], buf[i]
		buf[i+1], buf[i+2] = buf[i+2], buf[i+1]
	}
}

// Swap8 reverses the byte order of every 8-byte word in buf in place.
// A trailing partial word is left untouched.
func Swap8(buf []byte) {
	for i := 0; i+7 < len(buf); i += 8 {
		buf[i], buf[i+7] = buf[i+7], buf[i]
		buf[i+1], buf[i+6] = buf[i+6], buf[i+1]
		buf[i+2], buf[i+5] = buf[i+5], buf[i+2]
		buf[i+3], buf[i+4] = buf[i+4], buf[i+3]
	}
}

// Swap reverses the byte order of every width-byte word in buf in place.
//
// Width 1 is a no-op. Widths other than 1, 2, 4 and 8 return an error and leave buf unchanged.
func Swap(buf []byte, width int) error {
	switch width {
	case 1:
	case 2:
		Swap2(buf)
	case 4:
		Swap4(buf)
	case 8:
		Swap8(buf)
	default:
		return fmt.Errorf("swap: unsupported word width %d", width)
	}

	return nil
}
