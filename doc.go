/*
Command hexmon is a memory monitor in the style of the Woz Monitor

A monitor is the first thing to run on a bare machine: it prompts with a
backslash, reads one line from the console, and carries out the commands on
that line directly against memory, in hexadecimal. There is no notion of
symbols, files or processes; every address from 0000 to FFFF is fair game,
including the ones holding the monitor itself.

Lines are edited one key at a time. Backspace steps back one character, and
backspacing past the start of the line abandons it, as does Escape or typing
more than 255 characters. Return ends the line.

A line is a sequence of hex numbers (only 0-9 and upper case A-F), each
acting according to the mode set by the last marker before it:

	0300          examine: print the byte at 0300, move both cursors there
	0300.030F     block examine: print every byte from the examine cursor
	              through 030F, eight to a line
	0300: A9 00   store: after examining 0300, store A9 at 0300 and 00 at
	              0301; every further number stores the next byte
	R             run: transfer control to the examine cursor

Spaces, and anything else ordered below the '.' character, only separate
numbers. Each new line starts out in examine mode, and a block examine drops
back into it, so "0300.0307 0400" examines 0400 afterwards. Numbers fold in
every digit, keeping the last four; stored values keep only their last two.

A stray marker, lower case digit or any other character where a number was
expected abandons the rest of the line, and the prompt reappears.

Since there is no machine for Run to hand control to, hexmon either exits,
reporting the address, or passes it to a Lua program standing in for the
code there (see -exec).

Memory can be loaded before the first prompt from raw binary images at an
address, Intel HEX images, or a 512 byte boot sector, which is placed at
7C00 as PC firmware would; the cursors then start out at 7C00 so that R
runs it.

The console may be the controlling terminal (in raw mode when it is one),
a serial port, or a full screen terminal UI. Command scripts given with
-script are read first, as if typed.
*/
package main
