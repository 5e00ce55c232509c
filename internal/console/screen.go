package console

import (
	"io"

	"github.com/gdamore/tcell/v2"
)

// DefaultScrollback is the number of lines a Screen retains.
const DefaultScrollback = 1000

// Screen is a full screen console drawn with tcell: output scrolls up from
// the bottom of the screen like a glass teletype, and keys are read from
// tcell key events.
type Screen struct {
	// Scrollback limits the lines retained for redrawing after a resize.
	Scrollback int

	screen tcell.Screen
	style  tcell.Style
	lines  [][]rune
	col    int
	closed bool
}

// OpenScreen initializes the terminal's screen and returns a console on it.
func OpenScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreen(s)
}

// NewScreen initializes s and returns a console drawing on it.
func NewScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	scr := &Screen{
		Scrollback: DefaultScrollback,
		screen:     s,
		style:      tcell.StyleDefault,
		lines:      [][]rune{nil},
	}
	s.Clear()
	return scr, nil
}

// Name returns the name used for input locations.
func (scr *Screen) Name() string { return "screen" }

// ReadByte blocks until a key is pressed that maps onto a byte, redrawing the
// screen after any resize.
func (scr *Screen) ReadByte() (byte, error) {
	for {
		switch ev := scr.screen.PollEvent().(type) {
		case nil:
			return 0, io.EOF
		case *tcell.EventResize:
			scr.screen.Sync()
			scr.Flush()
		case *tcell.EventKey:
			if c, ok := keyByte(ev); ok {
				return translateKey(c)
			}
		}
	}
}

func keyByte(ev *tcell.EventKey) (byte, bool) {
	if ev.Key() == tcell.KeyRune {
		if r := ev.Rune(); r < 0x80 {
			return byte(r), true
		}
		return 0, false
	}
	if k := ev.Key(); k <= tcell.KeyDEL {
		return byte(k), true
	}
	return 0, false
}

// Read reads a single key.
func (scr *Screen) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := scr.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}

// Write renders p: CR returns to the first column, LF starts a new line, BS
// steps back one column, other control bytes are not shown.
func (scr *Screen) Write(p []byte) (int, error) {
	for _, c := range p {
		scr.WriteByte(c)
	}
	return len(p), nil
}

// WriteByte renders a single byte, see Write.
func (scr *Screen) WriteByte(c byte) error {
	i := len(scr.lines) - 1
	switch {
	case c == '\r':
		scr.col = 0
	case c == '\n':
		scr.lines = append(scr.lines, nil)
		if n := scr.Scrollback; n > 0 && len(scr.lines) > n {
			scr.lines = scr.lines[len(scr.lines)-n:]
		}
	case c == keyBS:
		if scr.col > 0 {
			scr.col--
		}
	case c < 0x20 || c >= keyDEL:
	default:
		line := scr.lines[i]
		for len(line) <= scr.col {
			line = append(line, ' ')
		}
		line[scr.col] = rune(c)
		scr.lines[i] = line
		scr.col++
	}
	return nil
}

// Lines returns the text retained on screen, oldest first.
func (scr *Screen) Lines() []string {
	lines := make([]string, len(scr.lines))
	for i, line := range scr.lines {
		lines[i] = string(line)
	}
	return lines
}

// Flush draws the tail of the scrollback onto the screen.
func (scr *Screen) Flush() error {
	w, h := scr.screen.Size()
	scr.screen.Clear()
	lines := scr.lines
	if len(lines) > h {
		lines = lines[len(lines)-h:]
	}
	for y, line := range lines {
		for x, r := range line {
			if x >= w {
				break
			}
			scr.screen.SetContent(x, y, r, nil, scr.style)
		}
	}
	scr.screen.ShowCursor(scr.col, len(lines)-1)
	scr.screen.Show()
	return nil
}

// Close restores the terminal.
func (scr *Screen) Close() error {
	if !scr.closed {
		scr.closed = true
		scr.screen.Fini()
	}
	return nil
}
