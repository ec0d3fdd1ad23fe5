//go:build linux || darwin || freebsd || netbsd || openbsd

// Package terminal puts a tty into raw mode and exposes the byte-level
// input, output and size queries the editor loop needs.
package terminal

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"example.com/rabi/pkg/keys"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Error describes a failed terminal operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "terminal: " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Terminal is a tty in raw mode. Reads time out after a tenth of a second
// so the caller can poll ResizeChanged between keys.
type Terminal struct {
	in, out *os.File
	state   *term.State
	resized atomic.Bool
	sig     chan os.Signal
	once    sync.Once
	buf     [1]byte
}

// Open switches in to raw mode with a 100ms read timeout and starts
// watching for window size changes. Restore must be called to undo it.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, &Error{Op: "raw mode", Err: err}
	}
	t := &Terminal{in: in, out: out, state: state}
	if err := setReadTimeout(fd); err != nil {
		_ = term.Restore(fd, state)
		return nil, &Error{Op: "read timeout", Err: err}
	}
	t.sig = make(chan os.Signal, 1)
	signal.Notify(t.sig, unix.SIGWINCH)
	go func() {
		for range t.sig {
			t.resized.Store(true)
		}
	}()
	return t, nil
}

// setReadTimeout makes read(2) return after 100ms with zero bytes.
func setReadTimeout(fd int) error {
	tio, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 1
	return unix.IoctlSetTermios(fd, ioctlSetTermios, tio)
}

// ReadByte returns the next input byte, or keys.ErrNoInput when none
// arrived within the read timeout.
func (t *Terminal) ReadByte() (byte, error) {
	n, err := unix.Read(int(t.in.Fd()), t.buf[:])
	switch {
	case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
		return 0, keys.ErrNoInput
	case err != nil:
		return 0, &Error{Op: "read", Err: err}
	case n == 0:
		return 0, keys.ErrNoInput
	}
	return t.buf[0], nil
}

// Write sends p to the output as is.
func (t *Terminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, &Error{Op: "write", Err: err}
	}
	return n, nil
}

// Size returns the window size in rows and columns.
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(t.out.Fd()))
	if err == nil && rows > 0 && cols > 0 {
		return rows, cols, nil
	}
	ws, werr := unix.IoctlGetWinsize(int(t.in.Fd()), unix.TIOCGWINSZ)
	if werr != nil {
		if err == nil {
			err = werr
		}
		return 0, 0, &Error{Op: "window size", Err: err}
	}
	if ws.Row == 0 || ws.Col == 0 {
		return 0, 0, &Error{Op: "window size", Err: errors.New("zero size")}
	}
	return int(ws.Row), int(ws.Col), nil
}

// ResizeChanged reports whether the window was resized since the last
// call.
func (t *Terminal) ResizeChanged() bool { return t.resized.Swap(false) }

// Restore leaves raw mode and stops watching for resizes. It is safe to
// call more than once.
func (t *Terminal) Restore() error {
	var err error
	t.once.Do(func() {
		signal.Stop(t.sig)
		close(t.sig)
		if rerr := term.Restore(int(t.in.Fd()), t.state); rerr != nil {
			err = &Error{Op: "restore", Err: rerr}
		}
	})
	return err
}
