package main

import (
	"fmt"
	"io"

	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/hexfmt"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/mem"
)

type monDumper struct {
	mon *Monitor
	out io.Writer
}

func (dump monDumper) dump() {
	fmt.Fprintf(dump.out, "# Monitor Dump\n")
	fmt.Fprintf(dump.out, "  mode: %v\n", dump.mon.mode)
	fmt.Fprintf(dump.out, "  store: %04X\n", dump.mon.storeCursor)
	fmt.Fprintf(dump.out, "  examine: %04X\n", dump.mon.examineCursor)
	dump.dumpMem()
}

// dumpMem prints every row of 8 bytes holding anything but zeros, in the
// same form the monitor examines them.
func (dump monDumper) dumpMem() {
	type pager interface{ Pages() []uint16 }

	var bases []uint16
	size := 0x10000
	if pm, ok := dump.mon.mem.(pager); ok {
		bases, size = pm.Pages(), mem.PageSize
	} else {
		bases = []uint16{0}
	}

	var row [8]byte
	line := make([]byte, 0, 32)
	for _, base := range bases {
		for off := 0; off < size; off += len(row) {
			addr := base + uint16(off)
			if !dump.loadRow(addr, row[:]) {
				continue
			}
			line = append(line[:0], ' ', ' ')
			line = hexfmt.AppendWord(line, addr)
			line = append(line, separator)
			for _, b := range row {
				line = hexfmt.AppendByte(append(line, ' '), b)
			}
			line = append(line, '\n')
			dump.out.Write(line)
		}
	}
}

// loadRow loads the bytes at addr into row, returning true if any is non-zero.
func (dump monDumper) loadRow(addr uint16, row []byte) (nonZero bool) {
	for i := range row {
		row[i] = dump.mon.mem.Load(addr + uint16(i))
		nonZero = nonZero || row[i] != 0
	}
	return nonZero
}
