package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
	"golang.org/x/term"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/byteio"
)

// Device is a console over a pair of byte streams, such as a terminal or a
// serial line. Output is buffered until Flush.
type Device struct {
	name  string
	raw   bool
	in    byteio.Reader
	out   *bufio.Writer
	close func() error
}

// NewDevice returns a Device reading keys from r and writing to w. The
// optional closer function is called by Close.
func NewDevice(name string, r io.Reader, w io.Writer, closer func() error) *Device {
	return &Device{
		name:  name,
		in:    Keys(r),
		out:   bufio.NewWriter(w),
		close: closer,
	}
}

// OpenTerminal returns a Device on the given terminal files, switching the
// terminal into raw mode so that keys arrive unbuffered and unechoed.
// If in is not a terminal, its input is read as lines ending in LF or CR LF
// instead, and the Device is not raw.
func OpenTerminal(in, out *os.File) (*Device, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return &Device{
			name: in.Name(),
			in:   byteio.Newlines(in),
			out:  bufio.NewWriter(out),
		}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode on %v: %w", in.Name(), err)
	}
	dev := NewDevice(in.Name(), in, out, func() error {
		return term.Restore(fd, state)
	})
	dev.raw = true
	return dev, nil
}

// SerialMode returns the 8N1 line settings used for serial consoles.
func SerialMode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial returns a Device on the named serial port.
func OpenSerial(name string, baud int) (*Device, error) {
	port, err := serial.Open(name, SerialMode(baud))
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %v: %w", name, err)
	}
	return NewDevice(name, port, port, port.Close), nil
}

// SerialPorts lists the serial ports available for OpenSerial.
func SerialPorts() ([]string, error) { return serial.GetPortsList() }

// Name returns the name of the device, for input locations.
func (dev *Device) Name() string { return dev.name }

// Raw returns true if the device is a terminal switched into raw mode.
func (dev *Device) Raw() bool { return dev.raw }

func (dev *Device) ReadByte() (byte, error)     { return dev.in.ReadByte() }
func (dev *Device) Read(p []byte) (int, error)  { return dev.in.Read(p) }
func (dev *Device) Write(p []byte) (int, error) { return dev.out.Write(p) }
func (dev *Device) WriteByte(c byte) error      { return dev.out.WriteByte(c) }
func (dev *Device) Flush() error                { return dev.out.Flush() }

// Close flushes any buffered output, then restores or closes the device.
func (dev *Device) Close() error {
	err := dev.out.Flush()
	if dev.close != nil {
		if cerr := dev.close(); err == nil {
			err = cerr
		}
		dev.close = nil
	}
	return err
}
