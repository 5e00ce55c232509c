package main

import (
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/byteio"
	"github.com/sirJayro/Bootable-i8086-Wozmon/internal/hexfmt"
)

type lineResult uint8

const (
	lineDone lineResult = iota
	lineAborted
	lineRun
)

// scanLine walks an accepted line once, dispatching every hex token under
// the mode set by the markers before it. A token without any hex digits
// aborts the rest of the line; Run ends it.
func (mon *Monitor) scanLine(line []byte) lineResult {
	mon.mode = modeIdle
	var at uint8
	for {
		switch c := line[at]; {
		case c == keyEnter:
			return lineDone

		// every byte ordered below the block marker separates tokens; the
		// terminator is one too, so must be tested first
		case c < keyBlock:
			at++

		case c == keyBlock:
			mon.mode = modeBlock
			at++

		case c == keyStore:
			mon.mode = modeStore
			at++

		case c == keyRun:
			return lineRun

		default:
			value, next := parseHex(line, at)
			if next == at {
				mon.logf("!", "not hex: %v", byteio.Quote(line[at:]))
				return lineAborted
			}
			at = next
			mon.dispatch(value)
		}
	}
}

// parseHex folds the run of hex digits starting at line[at] into a value,
// keeping only the last four digits' worth. It returns the value and the
// index of the first byte that is not a digit; the line's terminator ensures
// there is one.
func parseHex(line []byte, at uint8) (value uint16, next uint8) {
	for {
		n, ok := hexfmt.Nibble(line[at])
		if !ok {
			return value, at
		}
		value = value<<4 | uint16(n)
		at++
	}
}
