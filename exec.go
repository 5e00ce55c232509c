package main

import (
	"context"
	"fmt"
)

// Executor takes over control at an address when a Run command is entered.
// Returning nil hands control back to the monitor, which prompts for a new
// line with both cursors as they were.
type Executor interface {
	Execute(ctx context.Context, addr uint16) error
}

// ExecutorFunc adapts a function into an Executor.
type ExecutorFunc func(ctx context.Context, addr uint16) error

// Execute calls f(ctx, addr).
func (f ExecutorFunc) Execute(ctx context.Context, addr uint16) error { return f(ctx, addr) }

// RunRequest is returned by Monitor.Run when a Run command is entered while
// no Executor is installed; the host decides whether to honor it.
type RunRequest struct {
	Addr uint16
}

func (req RunRequest) Error() string { return fmt.Sprintf("run requested @%04X", req.Addr) }
