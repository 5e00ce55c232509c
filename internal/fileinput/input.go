// Package fileinput reads console input through a queue of streams, such as
// command scripts followed by an interactive console, while tracking where
// each line came from.
package fileinput

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/byteio"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string {
	return fmt.Sprintf("%v %q", il.Location, byteio.Quote(il.Buffer.Bytes()))
}

// Input implements sequential byte reading through a Queue of one or more
// input streams. Each stream is closed once exhausted, if it is an
// io.Closer. Both the current and last scanned lines are tracked to
// facilitate trace logging.
type Input struct {
	cur   io.Reader
	br    io.ByteReader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadByte reads one byte from the current input stream, moving on to the
// next queued stream at EOF. A carriage return rolls Scan over into Last.
func (in *Input) ReadByte() (byte, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return 0, io.EOF
		}
		c, err := in.br.ReadByte()
		if err == nil {
			if c == '\r' {
				in.nextLine()
			} else {
				in.Scan.WriteByte(c)
			}
			return c, nil
		}
		if err != io.EOF {
			return 0, err
		}
		in.closeIn()
	}
}

// Close closes the current stream and every stream still queued.
func (in *Input) Close() (err error) {
	if cerr := in.closeIn(); err == nil {
		err = cerr
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Location = in.Scan.Location
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) closeIn() (err error) {
	if in.cur != nil {
		if cl, ok := in.cur.(io.Closer); ok {
			err = cl.Close()
		}
		in.cur, in.br = nil, nil
	}
	return err
}

func (in *Input) nextIn() bool {
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.cur, in.br = r, byteio.NewReader(r)
		if in.Scan.Len() > 0 {
			in.nextLine()
		}
		in.Scan.Name = nameOf(r)
		in.Scan.Line = 1
	}
	return in.br != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
