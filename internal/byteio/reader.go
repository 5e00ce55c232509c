package byteio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that also supports reading single bytes.
type Reader interface {
	io.Reader
	io.ByteReader
}

// NewReader returns a Reader from r; if r already implements it, it is simply
// returned. Otherwise a bufio.Reader is wrapped around r.
// If r implements Name() string, so will the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	br := bufio.NewReader(r)
	if impl, ok := r.(interface{ Name() string }); ok {
		return namedByteReader{br, impl.Name()}
	}
	return br
}

type namedByteReader struct {
	Reader
	name string
}

func (nr namedByteReader) Name() string { return nr.name }

// Newlines returns a Reader that delivers the line feed and carriage
// return line feed endings of r as a lone carriage return, the monitor's
// line terminator. It is meant for script files and piped input.
func Newlines(r io.Reader) Reader {
	nl := &newlineReader{br: NewReader(r)}
	if impl, ok := r.(interface{ Name() string }); ok {
		return namedByteReader{nl, impl.Name()}
	}
	return nl
}

type newlineReader struct {
	br    io.ByteReader
	wasCR bool
}

func (nl *newlineReader) ReadByte() (byte, error) {
	for {
		c, err := nl.br.ReadByte()
		if err != nil {
			return 0, err
		}
		wasCR := nl.wasCR
		nl.wasCR = c == '\r'
		if c == '\n' {
			if wasCR {
				continue
			}
			c = '\r'
		}
		return c, nil
	}
}

func (nl *newlineReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		var c byte
		if c, err = nl.ReadByte(); err != nil {
			break
		}
		p[n] = c
		n++
		if c == '\r' {
			break
		}
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return n, err
}
