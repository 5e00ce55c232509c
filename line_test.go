package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_lineBuffer(t *testing.T) {
	var lb lineBuffer
	assert.False(t, lb.erase(), "erase on empty line")

	for i := 0; i < lineSize-1; i++ {
		lb.put('0')
		if !assert.True(t, lb.advance(), "advance #%v", i) {
			return
		}
	}
	assert.Equal(t, uint8(255), lb.at)
	lb.put('\r')
	assert.Len(t, lb.accepted(), lineSize)

	assert.True(t, lb.erase())
	assert.True(t, lb.advance())
	assert.False(t, lb.advance(), "expected the cursor to wrap")
	assert.Equal(t, uint8(0), lb.at)

	lb.put('R')
	assert.Equal(t, []byte("R"), lb.accepted())
	lb.reset()
	assert.Equal(t, uint8(0), lb.at)
}

func Test_parseHex(t *testing.T) {
	for _, tc := range []struct {
		in    string
		at    uint8
		value uint16
		next  uint8
	}{
		{"\r", 0, 0, 0},
		{"0\r", 0, 0, 1},
		{"A9 00\r", 0, 0xa9, 2},
		{"A9 00\r", 3, 0x00, 5},
		{"0300:\r", 0, 0x0300, 4},
		{"FFFF\r", 0, 0xffff, 4},
		{"123456\r", 0, 0x3456, 6},
		{"10000\r", 0, 0x0000, 5},
		{"7c00\r", 0, 0x7, 1},
		{"G\r", 0, 0, 0},
	} {
		value, next := parseHex([]byte(tc.in), tc.at)
		assert.Equal(t, tc.value, value, "value of %q @%v", tc.in, tc.at)
		assert.Equal(t, tc.next, next, "end of %q @%v", tc.in, tc.at)
	}
}

func Test_mode_String(t *testing.T) {
	assert.Equal(t, "idle", modeIdle.String())
	assert.Equal(t, "store", modeStore.String())
	assert.Equal(t, "block", modeBlock.String())
	assert.Equal(t, "invalid", mode(9).String())
}
