package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/mem"
)

type rwBuffer struct {
	*strings.Reader
	*bytes.Buffer
}

func (rw rwBuffer) Read(p []byte) (int, error)  { return rw.Reader.Read(p) }
func (rw rwBuffer) Write(p []byte) (int, error) { return rw.Buffer.Write(p) }

func TestMonitor_console(t *testing.T) {
	var memory mem.Bytes
	memory.Stor(0x7c00, 0xea)

	var out, tee bytes.Buffer
	mon := New(
		WithLogf(t.Logf),
		WithMemory(&memory),
		WithCursor(0x7c00),
		WithConsole(rwBuffer{strings.NewReader(".7C01\r7C00: 90\r"), &out}),
		WithTee(&tee),
	)
	require.NoError(t, mon.Run(context.Background()))
	require.NoError(t, mon.Close())

	want := "\\\r\n.7C01\r\n 00" +
		"\\\r\n7C00: 90\r\n\r\n7C00: EA" +
		"\\\r\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, want, tee.String())
	assert.Equal(t, byte(0x90), memory.Load(0x7c00))
}

func TestMonitor_input_queue(t *testing.T) {
	var out strings.Builder
	mon := New(
		WithLogf(t.Logf),
		WithInput(strings.NewReader("0300: 01\r")),
		WithInput(strings.NewReader("0300\r")),
		WithOutput(&out),
	)
	require.NoError(t, mon.Run(context.Background()))
	assert.True(t, strings.HasSuffix(out.String(), "\r\n0300: 01\\\r\n"), "got %q", out.String())
}

func TestMonitor_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	mon := New(
		WithLogf(t.Logf),
		WithInput(strings.NewReader("0300\r")),
		WithOutput(&out),
	)
	err := mon.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "expected canceled, got %v", err)
	assert.Equal(t, "", out.String())
}

func TestNew_memory(t *testing.T) {
	var out strings.Builder
	first := New(WithLogf(t.Logf), WithInput(strings.NewReader("9000: 42\r")))
	require.NoError(t, first.Run(context.Background()))
	assert.Equal(t, byte(0x42), first.mem.Load(0x9000))

	second := New(WithLogf(t.Logf), WithInput(strings.NewReader("9000\r")), WithOutput(&out))
	require.NoError(t, second.Run(context.Background()))
	assert.Equal(t, "\\\r\n9000\r\n\r\n9000: 00\\\r\n", out.String())
	assert.Equal(t, byte(0), second.mem.Load(0x9000))
	assert.NotSame(t, first.mem, second.mem, "expected each monitor to own its memory")
}

func TestMonitorOptions(t *testing.T) {
	var seen []int
	opt := func(i int) MonitorOption {
		return optFunc(func(*Monitor) { seen = append(seen, i) })
	}
	New(MonitorOptions(
		opt(1),
		nil,
		MonitorOptions(opt(2), opt(3)),
		opt(4),
	))
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
}

func Test_monDumper(t *testing.T) {
	var memory mem.Bytes
	memory.Stor(0x0300, 0xa9, 0x00, 0x8d)
	memory.Stor(0x7dfe, 0x55, 0xaa)

	mon := New(WithMemory(&memory), WithCursor(0x0300))
	var out strings.Builder
	monDumper{mon: mon, out: &out}.dump()
	assert.Equal(t, strings.Join([]string{
		"# Monitor Dump",
		"  mode: idle",
		"  store: 0300",
		"  examine: 0300",
		"  0300: A9 00 8D 00 00 00 00 00",
		"  7DF8: 00 00 00 00 00 00 55 AA",
		"",
	}, "\n"), out.String())
}

func Test_monDumper_flat(t *testing.T) {
	mon := New(WithMemory(flatMemory{0x0012: 0x34}))
	var out strings.Builder
	monDumper{mon: mon, out: &out}.dumpMem()
	assert.Equal(t, "  0010: 00 00 34 00 00 00 00 00\n", out.String())
}

type flatMemory map[uint16]byte

func (fm flatMemory) Load(addr uint16) byte { return fm[addr] }
func (fm flatMemory) Stor(addr uint16, values ...byte) {
	for _, value := range values {
		fm[addr] = value
		addr++
	}
}
