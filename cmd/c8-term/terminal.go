package main

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Control bytes read from the terminal in raw mode.
const (
	ctrlC  = 0x03
	escape = 0x1b
)

// Terminal puts the controlling terminal in raw mode and delivers key
// presses from a background reader.
type Terminal struct {
	fd       int
	oldState *term.State
	keys     chan byte
	quit     chan struct{}
}

// OpenTerminal switches stdin to raw mode and starts reading key presses.
func OpenTerminal() (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set raw mode")
	}

	t := &Terminal{
		fd:       fd,
		oldState: oldState,
		keys:     make(chan byte, 64),
		quit:     make(chan struct{}),
	}

	go t.read()
	return t, nil
}

// Keys yields the keys read from the terminal.
func (t *Terminal) Keys() <-chan byte {
	return t.keys
}

// Quit is closed when the user asks to exit with ESC or Ctrl-C,
// or when stdin is closed.
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

// Size returns the terminal dimensions in character cells.
func (t *Terminal) Size() (int, int, error) {
	return term.GetSize(t.fd)
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	return errors.Wrapf(term.Restore(t.fd, t.oldState), "failed to restore terminal")
}

// read runs until stdin fails. The reader is left blocked in Read when
// the program exits.
func (t *Terminal) read() {
	defer close(t.quit)

	buf := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}

		// A lone escape is the escape key. Longer sequences starting with
		// it are cursor and function keys, which are ignored.
		if n == 1 && buf[0] == escape {
			return
		}
		if buf[0] == escape {
			continue
		}

		for _, b := range buf[:n] {
			if b == ctrlC {
				return
			}

			select {
			case t.keys <- b:
			default:
			}
		}
	}
}
