package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/loader"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/logio"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/mem"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/panicerr"
)

func Test_config_flags(t *testing.T) {
	var cfg config
	fs := flag.NewFlagSet("hexmon", flag.ContinueOnError)
	cfg.register(fs)
	require.NoError(t, fs.Parse([]string{
		"-trace",
		"-load", "rom.bin@E000",
		"-load", "prog.hex",
		"-script", "a.txt",
		"-script", "b.txt",
		"-serial", "/dev/ttyUSB0",
		"-baud", "115200",
	}))

	assert.True(t, cfg.trace)
	assert.Equal(t, loadFlag{
		{Path: "rom.bin", Addr: 0xe000},
		{Path: "prog.hex"},
	}, cfg.loads)
	assert.Equal(t, "rom.bin@E000,prog.hex", cfg.loads.String())
	assert.Equal(t, stringsFlag{"a.txt", "b.txt"}, cfg.scripts)
	assert.Equal(t, "/dev/ttyUSB0", cfg.serial)
	assert.Equal(t, 115200, cfg.baud)

	timeout := fs.Lookup("timeout")
	if assert.NotNil(t, timeout) {
		assert.Contains(t, timeout.Usage, "checked between lines")
	}
}

func Test_config_flags_invalid(t *testing.T) {
	var cfg config
	fs := flag.NewFlagSet("hexmon", flag.ContinueOnError)
	fs.SetOutput(&logio.Writer{Logf: t.Logf})
	cfg.register(fs)
	assert.Error(t, fs.Parse([]string{"-load", "rom.bin@XYZ"}))
	assert.Error(t, fs.Parse([]string{"-load", "@0300"}))
}

func Test_config_run_errors(t *testing.T) {
	dir := t.TempDir()

	var log logio.Logger
	log.SetOutput(logio.NopCloser(&logio.Writer{Logf: t.Logf}))

	err := config{profile: "heap"}.run(context.Background(), &log)
	assert.EqualError(t, err, `invalid -profile "heap", want cpu or mem`)

	err = config{loads: loadFlag{{Path: filepath.Join(dir, "missing.bin")}}}.run(context.Background(), &log)
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected a missing image, got %v", err)

	short := filepath.Join(dir, "short.img")
	require.NoError(t, os.WriteFile(short, make([]byte, 100), 0o644))
	err = config{boot: short}.run(context.Background(), &log)
	assert.Error(t, err)
}

func Test_loadBootSector(t *testing.T) {
	dir := t.TempDir()
	sector := make([]byte, loader.BootSectorSize)
	sector[0] = 0xeb
	sector[510], sector[511] = 0x55, 0xaa

	good := filepath.Join(dir, "boot.img")
	require.NoError(t, os.WriteFile(good, sector, 0o644))
	var memory mem.Bytes
	require.NoError(t, loadBootSector(&memory, good))
	assert.Equal(t, byte(0xeb), memory.Load(loader.BootAddr))
	assert.Equal(t, byte(0xaa), memory.Load(loader.BootAddr+511))

	sector[511] = 0
	bad := filepath.Join(dir, "bad.img")
	require.NoError(t, os.WriteFile(bad, sector, 0o644))
	var sigErr loader.SignatureError
	err := loadBootSector(&memory, bad)
	assert.True(t, errors.As(err, &sigErr), "expected a signature error, got %v", err)
	assert.Equal(t, loader.SignatureError(0x0055), sigErr)
}

func Test_reportError(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		var log logio.Logger
		log.SetOutput(logio.NopCloser(&buf))
		reportError(&log, errors.New("no such port"))
		assert.Equal(t, "ERROR: no such port\n", buf.String())
		assert.Equal(t, 1, log.ExitCode())
	})

	t.Run("panic", func(t *testing.T) {
		var buf bytes.Buffer
		var log logio.Logger
		log.SetOutput(logio.NopCloser(&buf))
		reportError(&log, panicerr.Recover("monitor", func() error { panic("bad state") }))
		lines := strings.SplitN(buf.String(), "\n", 2)
		assert.Equal(t, "ERROR: monitor paniced: bad state", lines[0])
		if assert.Len(t, lines, 2) {
			assert.True(t, strings.HasPrefix(lines[1], "PANIC: goroutine "), "expected a stack, got %q", lines[1])
		}
		assert.Equal(t, 1, log.ExitCode())
	})
}
