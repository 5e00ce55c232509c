package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/byteio"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/console"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/loader"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/logio"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/luaexec"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/mem"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/panicerr"
)

func main() {
	var log logio.Logger
	log.SetOutput(logio.NopCloser(os.Stderr))

	var cfg config
	cfg.register(flag.CommandLine)
	flag.Parse()

	if err := cfg.run(context.Background(), &log); err != nil {
		reportError(&log, err)
	}
	os.Exit(log.ExitCode())
}

// reportError logs err, followed by the stack of any panic it recovered.
func reportError(log *logio.Logger, err error) {
	log.Errorf("%v", err)
	if stack := panicerr.PanicStack(err); stack != "" {
		log.Printf("PANIC", "%s", stack)
	}
}

type config struct {
	timeout    time.Duration
	trace      bool
	dump       bool
	tui        bool
	serial     string
	baud       int
	listSerial bool
	boot       string
	exec       string
	profile    string
	loads      loadFlag
	scripts    stringsFlag
}

func (cfg *config) register(fs *flag.FlagSet) {
	fs.DurationVar(&cfg.timeout, "timeout", 0, "end the session after a time limit, checked between lines")
	fs.BoolVar(&cfg.trace, "trace", false, "enable trace logging to stderr")
	fs.BoolVar(&cfg.dump, "dump", false, "dump cursors and non-zero memory to stderr at exit")
	fs.BoolVar(&cfg.tui, "tui", false, "run on a full screen terminal UI")
	fs.StringVar(&cfg.serial, "serial", "", "run on the named serial port instead of the terminal")
	fs.IntVar(&cfg.baud, "baud", 9600, "serial port baud rate")
	fs.BoolVar(&cfg.listSerial, "list-serial", false, "list serial ports and exit")
	fs.StringVar(&cfg.boot, "boot", "", "load a 512 byte boot sector `image` at 7C00 and start there")
	fs.StringVar(&cfg.exec, "exec", "", "hand Run commands to the Lua `program` defining run(addr)")
	fs.StringVar(&cfg.profile, "profile", "", "write a cpu or mem profile into the current directory")
	fs.Var(&cfg.loads, "load", "load an image `file[@ADDR]` before starting; .hex files are Intel HEX (repeatable)")
	fs.Var(&cfg.scripts, "script", "read commands from `file` before the console (repeatable)")
}

func (cfg config) run(ctx context.Context, log *logio.Logger) error {
	if cfg.listSerial {
		ports, err := console.SerialPorts()
		if err != nil {
			return err
		}
		for _, port := range ports {
			fmt.Println(port)
		}
		return nil
	}

	switch cfg.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		return fmt.Errorf("invalid -profile %q, want cpu or mem", cfg.profile)
	}

	var memory mem.Bytes
	opts := []MonitorOption{WithMemory(&memory)}

	for _, spec := range cfg.loads {
		n, err := spec.Load(&memory)
		if err != nil {
			return fmt.Errorf("failed to load %v: %w", spec, err)
		}
		log.Printf("INFO", "loaded %v bytes from %v", n, spec)
	}

	if cfg.boot != "" {
		if err := loadBootSector(&memory, cfg.boot); err != nil {
			return err
		}
		opts = append(opts, WithCursor(loader.BootAddr))
	}

	for _, path := range cfg.scripts {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, WithInput(byteio.Newlines(f)))
	}

	cons, raw, err := cfg.openConsole()
	if err != nil {
		return err
	}
	defer cons.Close()
	if raw {
		log.Wrap(logio.CRLF)
		defer log.Unwrap()
	}
	opts = append(opts, WithConsole(cons))

	if cfg.exec != "" {
		ex, err := luaexec.Open(cfg.exec, &memory, cons)
		if err != nil {
			return err
		}
		defer ex.Close()
		opts = append(opts, WithExecutor(ex))
	}

	if cfg.trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	mon := New(opts...)
	defer mon.Close()

	if cfg.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	err = mon.Run(ctx)

	if cfg.dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		monDumper{mon: mon, out: lw}.dump()
		lw.Close()
	}

	var req RunRequest
	switch {
	case errors.As(err, &req):
		log.Printf("INFO", "no executor for run @%04X, exiting", req.Addr)
		return nil
	case errors.Is(err, luaexec.ErrHalt), errors.Is(err, console.ErrInterrupt):
		return nil
	}
	return err
}

type consoleDevice interface {
	io.ReadWriter
	io.Closer
}

// openConsole opens the console device, reporting whether it is a terminal
// in raw mode.
func (cfg config) openConsole() (consoleDevice, bool, error) {
	switch {
	case cfg.serial != "":
		dev, err := console.OpenSerial(cfg.serial, cfg.baud)
		if err != nil {
			return nil, false, err
		}
		return dev, false, nil
	case cfg.tui:
		scr, err := console.OpenScreen()
		if err != nil {
			return nil, false, err
		}
		return scr, false, nil
	default:
		dev, err := console.OpenTerminal(os.Stdin, os.Stdout)
		if err != nil {
			return nil, false, err
		}
		return dev, dev.Raw(), nil
	}
}

func loadBootSector(m loader.Storer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := loader.BootSector(m, f); err != nil {
		return fmt.Errorf("failed to load boot sector %v: %w", path, err)
	}
	return nil
}

type loadFlag []loader.Spec

func (lf *loadFlag) String() string {
	if lf == nil {
		return ""
	}
	parts := make([]string, len(*lf))
	for i, spec := range *lf {
		parts[i] = spec.String()
	}
	return strings.Join(parts, ",")
}

func (lf *loadFlag) Set(s string) error {
	spec, err := loader.ParseSpec(s)
	if err == nil {
		*lf = append(*lf, spec)
	}
	return err
}

type stringsFlag []string

func (sf *stringsFlag) String() string {
	if sf == nil {
		return ""
	}
	return strings.Join(*sf, ",")
}

func (sf *stringsFlag) Set(s string) error {
	*sf = append(*sf, s)
	return nil
}
