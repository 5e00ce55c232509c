// Package hexfmt converts between bytes and the upper case hexadecimal
// digits the monitor reads and prints.
package hexfmt

const digits = "0123456789ABCDEF"

// Digit returns the ASCII hex digit for the low nibble of n.
func Digit(n byte) byte { return digits[n&0x0f] }

// Byte returns the two hex digits of b, most significant nibble first.
func Byte(b byte) [2]byte { return [2]byte{Digit(b >> 4), Digit(b)} }

// AppendByte appends the two hex digits of b to p.
func AppendByte(p []byte, b byte) []byte {
	return append(p, Digit(b>>4), Digit(b))
}

// AppendWord appends the four hex digits of w to p.
func AppendWord(p []byte, w uint16) []byte {
	return AppendByte(AppendByte(p, byte(w>>8)), byte(w))
}

// Nibble returns the value of the hex digit c.
// Only '0'-'9' and upper case 'A'-'F' are digits.
func Nibble(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
