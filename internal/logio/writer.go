package logio

import (
	"bytes"
	"io"
	"sync"
)

// Writer implements an io.Writer around a formatted logging function, handy
// for routing the standard log package into testing.T.Logf.
type Writer struct {
	Logf func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p, then passes every completed line to Logf.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.flushLines(false)
	return len(p), nil
}

// Close passes any final partial line to Logf.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.flushLines(true)
	return nil
}

func (lw *Writer) flushLines(all bool) {
	for lw.buf.Len() > 0 {
		if i := bytes.IndexByte(lw.buf.Bytes(), '\n'); i >= 0 {
			lw.Logf("%s", bytes.TrimSuffix(lw.buf.Next(i), []byte{'\r'}))
			lw.buf.Next(1)
		} else if all {
			lw.Logf("%s", lw.buf.Next(lw.buf.Len()))
		} else {
			break
		}
	}
}

// CRLF returns a pipe for Logger.Wrap that writes line feeds as CR LF, for
// logging to a terminal in raw mode.
func CRLF(wc io.WriteCloser) io.WriteCloser { return crlfWriter{wc} }

type crlfWriter struct{ io.WriteCloser }

func (cw crlfWriter) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			m, err := cw.WriteCloser.Write(p)
			return n + m, err
		}
		m, err := cw.WriteCloser.Write(p[:i])
		n += m
		if err != nil {
			return n, err
		}
		if _, err := cw.WriteCloser.Write([]byte("\r\n")); err != nil {
			return n, err
		}
		n++
		p = p[i+1:]
	}
	return n, nil
}
