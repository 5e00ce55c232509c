// Package luaexec runs the target of a monitor Run command as a Lua program
// standing in for the machine code at that address.
//
// A program defines a global function run(addr). While it runs, these
// globals are bound to the monitor session:
//
//	peek(addr)       returns the byte at addr
//	poke(addr, byte) stores a byte at addr
//	putc(c)          writes a byte or the first byte of a string to the console
//
// run returning false halts the session; returning anything else hands
// control back to the monitor.
package luaexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Memory is the address space a program may peek and poke.
type Memory interface {
	Load(addr uint16) byte
	Stor(addr uint16, values ...byte)
}

// ErrHalt is returned from Execute when run returns false.
var ErrHalt = errors.New("lua program halted")

// ErrNoRun is returned from Execute when the program defines no run function.
var ErrNoRun = errors.New("lua program defines no run function")

// Executor executes Run targets through a loaded Lua program.
type Executor struct {
	L   *lua.LState
	mem Memory
	out io.Writer
}

// Open loads the Lua program in the named file.
func Open(path string, mem Memory, out io.Writer) (*Executor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(path, f, mem, out)
}

// Load loads a Lua program from r, running its top level chunk.
func Load(name string, r io.Reader, mem Memory, out io.Writer) (*Executor, error) {
	ex := &Executor{
		L:   lua.NewState(),
		mem: mem,
		out: out,
	}
	ex.L.SetGlobal("peek", ex.L.NewFunction(ex.peek))
	ex.L.SetGlobal("poke", ex.L.NewFunction(ex.poke))
	ex.L.SetGlobal("putc", ex.L.NewFunction(ex.putc))

	fn, err := ex.L.Load(r, name)
	if err == nil {
		ex.L.Push(fn)
		err = ex.L.PCall(0, lua.MultRet, nil)
	}
	if err != nil {
		ex.L.Close()
		return nil, fmt.Errorf("failed to load %v: %w", name, err)
	}
	return ex, nil
}

// Execute calls run(addr), returning nil unless the program halts or fails.
func (ex *Executor) Execute(ctx context.Context, addr uint16) error {
	run := ex.L.GetGlobal("run")
	if run.Type() != lua.LTFunction {
		return ErrNoRun
	}

	ex.L.SetContext(ctx)
	defer ex.L.RemoveContext()

	if err := ex.L.CallByParam(lua.P{
		Fn:      run,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(addr)); err != nil {
		return fmt.Errorf("run(%04X) failed: %w", addr, err)
	}
	ret := ex.L.Get(-1)
	ex.L.Pop(1)
	if ret == lua.LFalse {
		return ErrHalt
	}
	return nil
}

// Close releases the Lua state.
func (ex *Executor) Close() error {
	ex.L.Close()
	return nil
}

func (ex *Executor) peek(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	L.Push(lua.LNumber(ex.mem.Load(addr)))
	return 1
}

func (ex *Executor) poke(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	val := byte(L.CheckInt(2))
	ex.mem.Stor(addr, val)
	return 0
}

func (ex *Executor) putc(L *lua.LState) int {
	var c byte
	switch v := L.Get(1).(type) {
	case lua.LNumber:
		c = byte(v)
	case lua.LString:
		if len(v) == 0 {
			return 0
		}
		c = v[0]
	default:
		L.ArgError(1, "number or string expected")
	}
	if _, err := ex.out.Write([]byte{c}); err != nil {
		L.RaiseError("putc: %v", err)
	}
	return 0
}
