package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"example.com/rabi/pkg/buffer"
	"example.com/rabi/pkg/config"
	"example.com/rabi/pkg/history"
	"example.com/rabi/pkg/keys"
	"example.com/rabi/pkg/logs"
	"example.com/rabi/pkg/syntax"
	"github.com/gdamore/tcell/v2"
)

const helpMessage = "^S save | ^Q quit | ^F find | ^G go to | ^D duplicate | ^E execute | ^C copy | ^X cut | ^V paste"

// Terminal is the byte-level screen the Runner drives.
type Terminal interface {
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
	Size() (rows, cols int, err error)
	ResizeChanged() bool
}

// Runner owns the editor state and the event loop. Only the goroutine
// calling Run touches it.
type Runner struct {
	Config   *config.Config
	Theme    config.Theme
	Syntaxes *syntax.Registry
	Term     Terminal
	Executor Executor
	Logger   *logs.Logger

	FilePath string
	Buf      *buffer.Buffer
	Cursor   Cursor
	Command  Command
	Dirty    bool
	KillRing history.KillRing

	status    string
	statusAt  time.Time
	quitTimes int
	quit      bool
	now       func() time.Time

	// Window size and the text area left after the gutter and both bars.
	screenRows, screenCols int
	textRows, textCols     int
	leftPad                int
}

// New creates a Runner with an empty buffer.
func New(cfg *config.Config, reg *syntax.Registry) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	theme, err := cfg.ResolveTheme()
	if err != nil {
		return nil, err
	}
	r := &Runner{
		Config:    cfg,
		Theme:     theme,
		Syntaxes:  reg,
		Executor:  ShellExecutor{},
		Logger:    logs.Disabled(),
		Buf:       buffer.New(nil, cfg.TabStop),
		quitTimes: cfg.QuitTimes,
		now:       time.Now,
	}
	r.setSize(24, 80)
	return r, nil
}

// LoadFile loads path into the buffer. A file that does not exist yet is
// opened as an empty buffer and created on save.
func (r *Runner) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	r.Logger.Event("open.attempt", map[string]any{"file": path})
	rules := r.Syntaxes.ForPath(path)
	r.FilePath = path
	r.Dirty = false
	r.Cursor = Cursor{}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.Buf = buffer.New(rules, r.Config.TabStop)
		r.Logger.Event("open.new", map[string]any{"file": path})
		return nil
	}
	if err != nil {
		r.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	buf, err := buffer.Read(f, rules, r.Config.TabStop)
	if err != nil {
		r.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return &IOError{Op: "read", Path: path, Err: err}
	}
	r.Buf = buf
	r.Logger.Event("open.success", map[string]any{"file": path, "rows": buf.Len(), "bytes": buf.Size()})
	return nil
}

// Run starts the event loop and returns when the user quits or the
// terminal fails.
func (r *Runner) Run() error {
	if r.Term == nil {
		return errors.New("app: no terminal")
	}
	if err := r.resize(); err != nil {
		return err
	}
	r.Logger.Event("run.start", map[string]any{"file": r.FilePath})
	defer r.Logger.Event("run.end", map[string]any{"file": r.FilePath})

	r.setStatus(helpMessage)
	dec := keys.NewDecoder(r.Term)
	for !r.quit {
		if err := r.refresh(); err != nil {
			return err
		}
		ev, err := r.readKey(dec)
		if err != nil {
			return err
		}
		r.HandleKey(ev)
	}
	// Leave a clean screen behind.
	_, err := r.Term.Write([]byte("\x1b[2J\x1b[H"))
	return err
}

// readKey waits for the next key, re-rendering whenever the window is
// resized in the meantime.
func (r *Runner) readKey(dec *keys.Decoder) (*tcell.EventKey, error) {
	for {
		if r.Term.ResizeChanged() {
			if err := r.resize(); err != nil {
				return nil, err
			}
			if err := r.refresh(); err != nil {
				return nil, err
			}
		}
		ev, err := dec.ReadKey()
		if errors.Is(err, keys.ErrNoInput) {
			continue
		}
		return ev, err
	}
}

func (r *Runner) resize() error {
	rows, cols, err := r.Term.Size()
	if err != nil {
		return err
	}
	r.setSize(rows, cols)
	r.Logger.Event("resize", map[string]any{"rows": rows, "cols": cols})
	return nil
}

// setSize records the window size and derives the text area from it.
func (r *Runner) setSize(rows, cols int) {
	r.screenRows, r.screenCols = rows, cols
	r.layout()
}

// layout recomputes the gutter width, which grows with the row count.
func (r *Runner) layout() {
	r.leftPad = 0
	if r.Config.ShowLineNumbers {
		r.leftPad = len(fmt.Sprint(r.Buf.Len())) + 2
	}
	r.textRows = max(r.screenRows-2, 1)
	r.textCols = max(r.screenCols-r.leftPad, 1)
}

// setStatus shows a message in the message bar for MessageDuration.
func (r *Runner) setStatus(format string, args ...any) {
	r.status = fmt.Sprintf(format, args...)
	r.statusAt = r.now()
}

// statusMessage returns the message if it has not expired yet.
func (r *Runner) statusMessage() string {
	if r.status == "" || r.now().Sub(r.statusAt) >= r.Config.MessageDuration {
		return ""
	}
	return r.status
}

// Quit reports whether the user asked to leave.
func (r *Runner) Quit() bool { return r.quit }
