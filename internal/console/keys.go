package console

import (
	"errors"
	"io"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/byteio"
)

// ErrInterrupt is returned by interactive consoles when the user types
// Ctrl-C; raw mode consoles do not get a SIGINT for it.
var ErrInterrupt = errors.New("console interrupted")

const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
	keyBS        = 0x08
	keyDEL       = 0x7f
)

// translateKey maps a keystroke from an interactive device onto the byte the
// monitor expects: most terminals send DEL for the backspace key, which the
// monitor only knows as BS.
func translateKey(c byte) (byte, error) {
	switch c {
	case keyDEL:
		return keyBS, nil
	case keyInterrupt:
		return 0, ErrInterrupt
	case keyEOF:
		return 0, io.EOF
	}
	return c, nil
}

// Keys returns a Reader delivering keystrokes read from r, one at a time,
// translated for the monitor: DEL reads as BS, Ctrl-C fails with
// ErrInterrupt and Ctrl-D reads as EOF.
func Keys(r io.Reader) byteio.Reader {
	return keyReader{byteio.NewReader(r)}
}

type keyReader struct{ br byteio.Reader }

func (kr keyReader) ReadByte() (byte, error) {
	c, err := kr.br.ReadByte()
	if err != nil {
		return 0, err
	}
	return translateKey(c)
}

func (kr keyReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := kr.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}
