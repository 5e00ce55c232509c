package main

import (
	"context"
	"errors"
	"io"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/panicerr"
)

// New builds a Monitor; by default it reads no input, discards its output
// and runs over an empty sparse memory, with both cursors at 0000.
func New(opts ...MonitorOption) *Monitor {
	var mon Monitor
	mon.apply(opts...)
	return &mon
}

// Run reads, scans and dispatches lines until input runs out, returning nil
// then. Any other console error, or ctx being done between lines, is returned.
// A Run command returns a RunRequest unless an Executor is installed.
func (mon *Monitor) Run(ctx context.Context) error {
	err := panicerr.Recover("monitor", func() error {
		return mon.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	return err
}

func WithInput(r io.Reader) MonitorOption        { return withInput(r) }
func WithOutput(w io.Writer) MonitorOption       { return withOutput(w) }
func WithTee(w io.Writer) MonitorOption          { return withTee(w) }
func WithConsole(rw io.ReadWriter) MonitorOption { return withConsole(rw) }
func WithMemory(m Memory) MonitorOption          { return withMemory(m) }
func WithExecutor(ex Executor) MonitorOption     { return withExecutor(ex) }
func WithCursor(addr uint16) MonitorOption       { return withCursor(addr) }

func WithLogf(logfn func(mess string, args ...interface{})) MonitorOption { return withLogfn(logfn) }
