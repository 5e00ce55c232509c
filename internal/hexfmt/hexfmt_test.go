package hexfmt_test

import (
	"testing"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/hexfmt"
	"github.com/stretchr/testify/assert"
)

func Test_Digit(t *testing.T) {
	for n, want := range "0123456789ABCDEF" {
		assert.Equal(t, byte(want), hexfmt.Digit(byte(n)), "digit for %v", n)
	}
	assert.Equal(t, byte('F'), hexfmt.Digit(0xff), "only the low nibble counts")
}

func Test_Byte(t *testing.T) {
	for _, tc := range []struct {
		in   byte
		want string
	}{
		{0x00, "00"},
		{0x0a, "0A"},
		{0xa9, "A9"},
		{0xff, "FF"},
	} {
		b := hexfmt.Byte(tc.in)
		assert.Equal(t, tc.want, string(b[:]), "hex of %#02x", tc.in)
	}
}

func Test_Append(t *testing.T) {
	p := hexfmt.AppendWord(nil, 0x7c00)
	p = append(p, ':')
	p = hexfmt.AppendByte(p, 0xea)
	assert.Equal(t, "7C00:EA", string(p))
}

func Test_Nibble(t *testing.T) {
	for c := 0; c < 256; c++ {
		n, ok := hexfmt.Nibble(byte(c))
		switch {
		case '0' <= c && c <= '9':
			assert.True(t, ok, "%q is a digit", c)
			assert.Equal(t, byte(c-'0'), n)
		case 'A' <= c && c <= 'F':
			assert.True(t, ok, "%q is a digit", c)
			assert.Equal(t, byte(c-'A'+10), n)
		default:
			assert.False(t, ok, "%q is not a digit", c)
		}
	}
}
