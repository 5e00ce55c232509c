package main

import (
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/hexfmt"
)

func (mon *Monitor) dispatch(value uint16) {
	switch mon.mode {
	case modeStore:
		mon.logf(":", "%04X <- %02X", mon.storeCursor, byte(value))
		mon.mem.Stor(mon.storeCursor, byte(value))
		mon.storeCursor++

	case modeIdle:
		mon.logf("@", "%04X", value)
		mon.storeCursor = value
		mon.examineCursor = value
		mon.printAddr()
		mon.printData()

	case modeBlock:
		mon.logf(".", "%04X .. %04X", mon.examineCursor, value)
		mon.examineBlock(value)
		mon.mode = modeIdle
	}
}

// examineBlock prints every byte after the examine cursor through end,
// inclusive, starting a new line at each multiple of 8.
func (mon *Monitor) examineBlock(end uint16) {
	for mon.examineCursor != end {
		mon.examineCursor++
		if mon.examineCursor%8 == 0 {
			mon.printAddr()
		}
		mon.printData()
	}
}

// printAddr starts a new output line with the examine cursor, like "0300:".
func (mon *Monitor) printAddr() {
	var buf [5]byte
	mon.newline()
	mon.write(append(hexfmt.AppendWord(buf[:0], mon.examineCursor), separator))
}

// printData prints the byte at the examine cursor, like " A9".
func (mon *Monitor) printData() {
	var buf [3]byte
	mon.write(hexfmt.AppendByte(append(buf[:0], ' '), mon.mem.Load(mon.examineCursor)))
}
