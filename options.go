package main

import (
	"io"
	"io/ioutil"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/console"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/mem"
)

// MonitorOption customizes a Monitor built by New.
type MonitorOption interface{ apply(mon *Monitor) }

// MonitorOptions combines options, applying them in order.
func MonitorOptions(opts ...MonitorOption) MonitorOption {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	return all
}

type options []MonitorOption

func (opts options) apply(mon *Monitor) {
	for _, opt := range opts {
		opt.apply(mon)
	}
}

var defaults = []MonitorOption{
	withOutput(ioutil.Discard),
}

func (mon *Monitor) apply(opts ...MonitorOption) {
	for _, opt := range defaults {
		opt.apply(mon)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(mon)
		}
	}
	if mon.mem == nil {
		mon.mem = &mem.Bytes{}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(mon *Monitor) {
	mon.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type consoleOption struct{ io.ReadWriter }
type memoryOption struct{ Memory }
type executorOption struct{ Executor }
type cursorOption uint16

func withInput(r io.Reader) inputOption          { return inputOption{r} }
func withOutput(w io.Writer) outputOption        { return outputOption{w} }
func withTee(w io.Writer) teeOption              { return teeOption{w} }
func withConsole(rw io.ReadWriter) consoleOption { return consoleOption{rw} }
func withMemory(m Memory) memoryOption           { return memoryOption{m} }
func withExecutor(ex Executor) executorOption    { return executorOption{ex} }
func withCursor(addr uint16) cursorOption        { return cursorOption(addr) }

func (i inputOption) apply(mon *Monitor) {
	mon.in.Queue = append(mon.in.Queue, i.Reader)
}

func (o outputOption) apply(mon *Monitor) {
	if mon.out != nil {
		mon.out.Flush()
	}
	mon.out = console.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(mon *Monitor) {
	mon.out = console.WriteFlushers(mon.out, console.NewWriteFlusher(o.Writer))
}

func (c consoleOption) apply(mon *Monitor) {
	withInput(c.ReadWriter).apply(mon)
	withOutput(c.ReadWriter).apply(mon)
}

func (m memoryOption) apply(mon *Monitor)    { mon.mem = m.Memory }
func (ex executorOption) apply(mon *Monitor) { mon.exec = ex.Executor }

func (addr cursorOption) apply(mon *Monitor) {
	mon.storeCursor = uint16(addr)
	mon.examineCursor = uint16(addr)
}
