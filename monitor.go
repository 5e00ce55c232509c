package main

import (
	"context"
)

// Memory is the flat 16-bit address space a Monitor examines and stores into.
type Memory interface {
	Load(addr uint16) byte
	Stor(addr uint16, values ...byte)
}

// Monitor is one interactive session: the two address cursors, the command
// mode and the line being edited persist for its whole run.
type Monitor struct {
	core
	mem  Memory
	exec Executor

	line lineBuffer
	mode mode

	// storeCursor is the next address to write, examineCursor the next
	// address to read and print; both wrap at 0xFFFF.
	storeCursor   uint16
	examineCursor uint16
}

// Command and editing keys.
const (
	keyBlock = '.'
	keyStore = ':'
	keyRun   = 'R'
	keyErase = 0x08
	keyAbort = 0x1B
	keyEnter = '\r'

	promptChar = '\\'
	separator  = ':'
)

type mode uint8

const (
	modeIdle mode = iota
	modeStore
	modeBlock
)

var modeNames = [...]string{"idle", "store", "block"}

func (m mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "invalid"
}

func (mon *Monitor) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			mon.flush()
			return err
		}
		switch line := mon.readLine(); mon.scanLine(line) {
		case lineAborted:
			mon.logf("!", "aborted %v", mon.in.Last.Location)
		case lineRun:
			if err := mon.runAt(ctx, mon.examineCursor); err != nil {
				return err
			}
		}
	}
}

// runAt hands control to the executor. Without one, the request is returned
// for the host to act on.
func (mon *Monitor) runAt(ctx context.Context, addr uint16) error {
	mon.flush()
	if mon.exec == nil {
		mon.logf("R", "run @%04X requested", addr)
		return RunRequest{addr}
	}
	mon.logf("R", "run @%04X", addr)
	if err := mon.exec.Execute(ctx, addr); err != nil {
		return err
	}
	mon.logf("R", "returned from @%04X", addr)
	return nil
}
