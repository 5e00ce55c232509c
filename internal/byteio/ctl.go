// Package byteio provides byte-level reading helpers for console input and
// printable names for the control bytes that drive the monitor.
package byteio

import (
	"strings"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/hexfmt"
)

// c0Names holds the classic ASCII control character mnemonics.
var c0Names = [32]string{
	"<NUL>", "<SOH>", "<STX>", "<ETX>", "<EOT>", "<ENQ>", "<ACK>", "<BEL>",
	"<BS>", "<HT>", "<NL>", "<VT>", "<NP>", "<CR>", "<SO>", "<SI>",
	"<DLE>", "<DC1>", "<DC2>", "<DC3>", "<DC4>", "<NAK>", "<SYN>", "<ETB>",
	"<CAN>", "<EM>", "<SUB>", "<ESC>", "<FS>", "<GS>", "<RS>", "<US>",
}

// Name returns a printable form of c: the mnemonic of a control byte like
// "<ESC>", "<SP>" or "<DEL>", an escape like `\xA9` for bytes outside of
// ASCII, or the character itself.
func Name(c byte) string {
	switch {
	case c < 0x20:
		return c0Names[c]
	case c == 0x20:
		return "<SP>"
	case c == 0x7f:
		return "<DEL>"
	case c >= 0x80:
		x := hexfmt.Byte(c)
		return `\x` + string(x[:])
	}
	return string(rune(c))
}

// Quote returns p with every control byte replaced by its Name; printable
// ASCII, including space, is left as is.
func Quote(p []byte) string {
	var sb strings.Builder
	for _, c := range p {
		if c == ' ' {
			sb.WriteByte(c)
		} else {
			sb.WriteString(Name(c))
		}
	}
	return sb.String()
}
