package app

import (
	"example.com/rabi/pkg/keys"
	"github.com/gdamore/tcell/v2"
)

// actions lists the remappable commands in the order bindings are checked.
var actions = []string{
	"quit", "save", "find", "goto", "execute",
	"copy", "cut", "paste", "duplicate", "remove_line", "refresh",
}

// actionFor returns the command bound to ev, or "".
func (r *Runner) actionFor(ev *tcell.EventKey) string {
	for _, name := range actions {
		if kb, ok := r.Config.Keymap[name]; ok && kb.Matches(ev) {
			return name
		}
	}
	return ""
}

// HandleKey processes one key: the active prompt gets it if there is one,
// otherwise it is a normal-mode edit, move or command.
func (r *Runner) HandleKey(ev *tcell.EventKey) {
	r.Logger.Event("key", map[string]any{"key": ev.Name()})
	if r.Command != nil {
		r.handleCommandKey(ev)
		r.scroll()
		return
	}
	action := r.actionFor(ev)
	if action == "quit" {
		r.requestQuit()
		return
	}
	r.quitTimes = r.Config.QuitTimes
	if action != "" {
		r.Logger.Event("action", map[string]any{"action": action})
		r.runAction(action)
	} else {
		r.handleEditKey(ev)
	}
	r.scroll()
}

// requestQuit leaves at once when the buffer is clean; otherwise the quit
// key has to be pressed QuitTimes times in a row.
func (r *Runner) requestQuit() {
	if r.Dirty && r.quitTimes > 1 {
		r.quitTimes--
		times := "times"
		if r.quitTimes == 1 {
			times = "time"
		}
		r.setStatus("WARNING!!! File has unsaved changes. Press %s %d more %s to quit.",
			r.Config.Keymap["quit"], r.quitTimes, times)
		return
	}
	r.quit = true
}

func (r *Runner) runAction(action string) {
	switch action {
	case "save":
		r.save()
	case "find":
		r.startFind()
	case "goto":
		r.startCommand(&GoToCommand{})
	case "execute":
		r.startCommand(&ExecuteCommand{})
	case "copy":
		r.copyRow()
	case "cut":
		if r.copyRow() {
			r.removeRow()
		}
	case "paste":
		r.pasteRow()
	case "duplicate":
		r.duplicateRow()
	case "remove_line":
		r.removeRow()
	case "refresh":
		// The next frame redraws everything.
	}
}

func (r *Runner) handleEditKey(ev *tcell.EventKey) {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch k := ev.Key(); {
	case k == tcell.KeyUp, k == tcell.KeyDown, k == tcell.KeyLeft, k == tcell.KeyRight:
		r.moveCursor(k, ctrl)
	case k == tcell.KeyHome:
		r.Cursor.X = 0
	case k == tcell.KeyEnd:
		if row := r.currentRow(); row != nil {
			r.Cursor.X = len(row.Chars)
		}
	case k == tcell.KeyPgUp:
		r.pageUp()
	case k == tcell.KeyPgDn:
		r.pageDown()
	case k == tcell.KeyEnter:
		r.insertNewline()
	case keys.IsBackspace(ev):
		r.deleteChar()
	case k == tcell.KeyDelete:
		r.moveCursor(tcell.KeyRight, false)
		r.deleteChar()
	case k == tcell.KeyTab:
		r.insertByte('\t')
	case keys.IsPrintable(ev):
		r.insertByte(byte(ev.Rune()))
	}
}

func (r *Runner) insertByte(c byte) {
	r.Buf.InsertByte(r.Cursor.X, r.Cursor.Y, c)
	r.Cursor.X++
	r.Dirty = true
}

func (r *Runner) insertNewline() {
	r.Buf.InsertNewline(r.Cursor.X, r.Cursor.Y)
	r.Cursor.X, r.Cursor.Y = 0, r.Cursor.Y+1
	r.Dirty = true
}

func (r *Runner) deleteChar() {
	size := r.Buf.Size()
	r.Cursor.X, r.Cursor.Y = r.Buf.DeleteChar(r.Cursor.X, r.Cursor.Y)
	if r.Buf.Size() != size {
		r.Dirty = true
	}
}

// copyRow puts the current row in the kill ring. It reports false past the
// end of the buffer, where there is no row.
func (r *Runner) copyRow() bool {
	row := r.currentRow()
	if row == nil {
		return false
	}
	r.KillRing.Push(row.Chars)
	return true
}

// pasteRow inserts the last copied row below the cursor and moves there.
func (r *Runner) pasteRow() {
	if !r.KillRing.HasData() {
		return
	}
	at := min(r.Cursor.Y+1, r.Buf.Len())
	r.Buf.InsertRow(at, r.KillRing.Current())
	r.Cursor.Y = at
	r.clampX()
	r.Dirty = true
}

func (r *Runner) duplicateRow() {
	row := r.currentRow()
	if row == nil {
		return
	}
	r.Buf.InsertRow(r.Cursor.Y+1, append([]byte(nil), row.Chars...))
	r.Cursor.Y++
	r.clampX()
	r.Dirty = true
}

func (r *Runner) removeRow() {
	if r.currentRow() == nil {
		return
	}
	r.Buf.DeleteRow(r.Cursor.Y)
	r.clampX()
	r.Dirty = true
}
