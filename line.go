package main

import (
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/byteio"
)

const lineSize = 256

// lineBuffer holds the line being entered; its cursor wraps modulo 256.
type lineBuffer struct {
	buf [lineSize]byte
	at  uint8
}

func (lb *lineBuffer) reset()     { lb.at = 0 }
func (lb *lineBuffer) put(c byte) { lb.buf[lb.at] = c }

// erase steps back one byte, returning false if the line was already empty.
func (lb *lineBuffer) erase() bool {
	if lb.at == 0 {
		return false
	}
	lb.at--
	return true
}

// advance steps past the byte just put, returning false if the buffer
// wrapped around.
func (lb *lineBuffer) advance() bool {
	lb.at++
	return lb.at != 0
}

// accepted returns the line up to and including the byte at the cursor.
func (lb *lineBuffer) accepted() []byte { return lb.buf[:int(lb.at)+1] }

// readLine prompts for and edits lines until one is terminated, returning it
// including its terminating carriage return.
func (mon *Monitor) readLine() []byte {
	for {
		mon.prompt()
		if line := mon.editLine(); line != nil {
			return line
		}
	}
}

func (mon *Monitor) prompt() {
	mon.writeByte(promptChar)
	mon.newline()
	mon.line.reset()
}

// editLine reads keys into the line buffer, echoing each; it returns nil if
// the line is abandoned: an erase past its start, the abort key or
// overflowing the buffer.
func (mon *Monitor) editLine() []byte {
	for {
		c := mon.readByte()
		mon.line.put(c)
		mon.echo(c)
		switch c {
		case keyEnter:
			line := mon.line.accepted()
			mon.logf(">", "%v %v", mon.in.Last.Location, byteio.Quote(line))
			return line
		case keyErase:
			if !mon.line.erase() {
				mon.logf("!", "erase on empty line")
				return nil
			}
		case keyAbort:
			mon.logf("!", "abort key")
			return nil
		default:
			if !mon.line.advance() {
				mon.logf("!", "line overflow")
				return nil
			}
		}
	}
}

func (mon *Monitor) echo(c byte) {
	if c == keyEnter {
		mon.newline()
	} else {
		mon.writeByte(c)
	}
}
