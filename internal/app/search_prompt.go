package app

import (
	"example.com/rabi/pkg/config"
	"example.com/rabi/pkg/search"
	"github.com/gdamore/tcell/v2"
)

// startFind enters the incremental search prompt.
func (r *Runner) startFind() {
	r.startCommand(&FindCommand{Saved: r.Cursor, LastMatch: -1})
}

// findKey applies one key to the search prompt. Right/Down and the find
// key jump to the next match, Left/Up to the previous one; any other key
// edits the query and searches again from the current match row.
func (r *Runner) findKey(cmd *FindCommand, ev *tcell.EventKey, quit config.Keybinding) {
	input, state := editPrompt(cmd.Input, ev, quit)
	cmd.Input = input
	r.Buf.ClearMatches()
	switch state {
	case promptCancelled:
		r.Cursor = cmd.Saved
		r.endCommand(state)
		return
	case promptCompleted:
		r.endCommand(state)
		return
	}

	n := r.Buf.Len()
	var start int
	forward := true
	switch {
	case ev.Key() == tcell.KeyRight, ev.Key() == tcell.KeyDown, r.Config.Keymap["find"].Matches(ev):
		start = cmd.LastMatch + 1
	case ev.Key() == tcell.KeyLeft, ev.Key() == tcell.KeyUp:
		forward = false
		start = cmd.LastMatch - 1
		if cmd.LastMatch < 0 {
			start = n - 1
		}
	default:
		start = max(cmd.LastMatch, 0)
	}

	y, x, ok := search.Next(r.Buf, []byte(cmd.Input), start, forward)
	if !ok {
		cmd.LastMatch = -1
		return
	}
	cmd.LastMatch = y
	row := r.Buf.Row(y)
	row.Match = &search.Range{Start: row.RenderX(x), End: row.RenderX(x + len(cmd.Input))}
	r.Cursor.Y, r.Cursor.X = y, x
	r.Logger.Event("find.match", map[string]any{"row": y, "col": x})
}
