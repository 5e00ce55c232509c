// Package console provides the character devices a monitor session can run
// on: plain streams, a raw mode terminal, a serial line and a full screen
// terminal UI.
package console

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able output that can write single bytes.
type WriteFlusher interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

var discard WriteFlusher = nopFlusher{ioutil.Discard}

// NewWriteFlusher creates a flushable output from w: in memory buffers are
// wrapped with a noop Flush, a WriteFlusher is returned as is, and anything
// else is buffered through a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == ioutil.Discard {
		return discard
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

func (nf nopFlusher) WriteByte(c byte) error {
	if bw, ok := nf.Writer.(io.ByteWriter); ok {
		return bw.WriteByte(c)
	}
	_, err := nf.Writer.Write([]byte{c})
	return err
}

// WriteFlushers combines any number of WriteFlusher-s into a single one that
// will write into and flush all of them.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	switch wfs := appendWriteFlusher(nil, wfs...); len(wfs) {
	case 0:
		return nil
	case 1:
		return wfs[0]
	default:
		return wfs
	}
}

type writeFlushers []WriteFlusher

func (wfs writeFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs writeFlushers) WriteByte(c byte) error {
	for _, wf := range wfs {
		if err := wf.WriteByte(c); err != nil {
			return err
		}
	}
	return nil
}

func (wfs writeFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

func appendWriteFlusher(all writeFlushers, some ...WriteFlusher) writeFlushers {
	for _, one := range some {
		if many, ok := one.(writeFlushers); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}
