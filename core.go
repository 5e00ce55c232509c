package main

import (
	"fmt"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/console"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/fileinput"
)

type core struct {
	logging
	in  fileinput.Input
	out console.WriteFlusher
}

// Close flushes any buffered output, then closes all input streams.
func (core *core) Close() (err error) {
	if core.out != nil {
		err = core.out.Flush()
	}
	if cerr := core.in.Close(); err == nil {
		err = cerr
	}
	return err
}

func (core *core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (core *core) writeByte(c byte) {
	if err := core.out.WriteByte(c); err != nil {
		core.halt(err)
	}
}

func (core *core) write(p []byte) {
	if _, err := core.out.Write(p); err != nil {
		core.halt(err)
	}
}

func (core *core) newline() {
	core.writeByte('\r')
	core.writeByte('\n')
}

func (core *core) flush() {
	if err := core.out.Flush(); err != nil {
		core.halt(err)
	}
}

// readByte blocks for the next input byte, flushing output first so that
// everything echoed or printed so far is visible.
func (core *core) readByte() byte {
	core.flush()
	c, err := core.in.ReadByte()
	if err != nil {
		core.halt(err)
	}
	return c
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
