// Package loader places program images into a monitor's address space
// before the first line is read.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcinbor85/gohex"
)

// Storer is the address space images are stored into.
type Storer interface {
	Stor(addr uint16, values ...byte)
}

const (
	// BootSectorSize is the exact size of a boot sector image.
	BootSectorSize = 512

	// BootSignature is the little endian word ending every boot sector.
	BootSignature = 0xAA55

	// BootAddr is where firmware conventionally loads a boot sector.
	BootAddr = 0x7C00

	spaceSize = 0x10000
)

// RangeError reports an image that does not fit within the address space.
type RangeError struct {
	Addr uint32
	Size int
}

func (re RangeError) Error() string {
	return fmt.Sprintf("image of %v bytes @%04X exceeds the address space", re.Size, re.Addr)
}

// SignatureError reports a boot sector without the boot signature.
type SignatureError uint16

func (se SignatureError) Error() string {
	return fmt.Sprintf("invalid boot signature %04X, want %04X", uint16(se), BootSignature)
}

var errBootSize = fmt.Errorf("boot sector must be exactly %v bytes", BootSectorSize)

// Binary stores the whole of r at addr, wrapping past 0xFFFF; an image
// larger than the address space is a RangeError.
func Binary(m Storer, addr uint16, r io.Reader) (int, error) {
	data, err := ioutil.ReadAll(io.LimitReader(r, spaceSize+1))
	if err != nil {
		return 0, err
	}
	if len(data) > spaceSize {
		return 0, RangeError{uint32(addr), len(data)}
	}
	m.Stor(addr, data...)
	return len(data), nil
}

// IntelHex stores every data segment of the Intel HEX image read from r,
// returning the number of bytes stored. Segments reaching past 0xFFFF are a
// RangeError, and nothing is stored.
func IntelHex(m Storer, r io.Reader) (int, error) {
	hex := gohex.NewMemory()
	if err := hex.ParseIntelHex(r); err != nil {
		return 0, err
	}
	segs := hex.GetDataSegments()
	for _, seg := range segs {
		if end := int(seg.Address) + len(seg.Data); end > spaceSize {
			return 0, RangeError{seg.Address, len(seg.Data)}
		}
	}
	n := 0
	for _, seg := range segs {
		m.Stor(uint16(seg.Address), seg.Data...)
		n += len(seg.Data)
	}
	return n, nil
}

// BootSector checks that r holds exactly one boot sector ending in the boot
// signature, and stores it at BootAddr.
func BootSector(m Storer, r io.Reader) error {
	var sector [BootSectorSize + 1]byte
	n, err := io.ReadFull(r, sector[:])
	switch {
	case err == io.ErrUnexpectedEOF || err == io.EOF:
		if n != BootSectorSize {
			return errBootSize
		}
	case err != nil:
		return err
	default:
		return errBootSize
	}
	if sig := uint16(sector[510]) | uint16(sector[511])<<8; sig != BootSignature {
		return SignatureError(sig)
	}
	m.Stor(BootAddr, sector[:BootSectorSize]...)
	return nil
}

// Spec describes an image file to load, written as "path" or "path@ADDR"
// with a hexadecimal address.
type Spec struct {
	Path string
	Addr uint16
}

// ParseSpec parses a "path[@ADDR]" image argument.
func ParseSpec(s string) (Spec, error) {
	spec := Spec{Path: s}
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		addr, err := strconv.ParseUint(s[i+1:], 16, 16)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid load address in %q: %w", s, err)
		}
		spec.Path, spec.Addr = s[:i], uint16(addr)
	}
	if spec.Path == "" {
		return Spec{}, errors.New("missing image path")
	}
	return spec, nil
}

func (spec Spec) String() string {
	if spec.Addr == 0 {
		return spec.Path
	}
	return fmt.Sprintf("%v@%04X", spec.Path, spec.Addr)
}

// IsIntelHex returns true if the image is an Intel HEX file, going by its
// extension; Intel HEX images carry their own addresses.
func (spec Spec) IsIntelHex() bool {
	switch strings.ToLower(filepath.Ext(spec.Path)) {
	case ".hex", ".ihex", ".ihx":
		return true
	}
	return false
}

// Load reads the image file into m, returning the number of bytes stored.
func (spec Spec) Load(m Storer) (int, error) {
	data, err := os.ReadFile(spec.Path)
	if err != nil {
		return 0, err
	}
	if spec.IsIntelHex() {
		return IntelHex(m, bytes.NewReader(data))
	}
	return Binary(m, spec.Addr, bytes.NewReader(data))
}
