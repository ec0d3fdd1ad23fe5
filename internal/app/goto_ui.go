package app

import (
	"strconv"
	"strings"
)

// finishGoTo moves the cursor once the go-to prompt completes.
func (r *Runner) finishGoTo(cmd *GoToCommand, state promptState) {
	if state == promptActive {
		return
	}
	r.endCommand(state)
	if state == promptCancelled {
		return
	}
	if err := r.goTo(cmd.Input); err != nil {
		r.Logger.Event("goto.error", map[string]any{"input": cmd.Input, "error": err.Error()})
		r.setStatus("Parsing error: %v", err)
	}
}

// goTo moves the cursor to "row[:col]", both 1-indexed. The row is clamped
// to the last row; the column is a render column clamped to the row. With
// no column the cursor keeps its byte offset, clamped to the row.
func (r *Runner) goTo(input string) error {
	rowText, colText, hasCol := strings.Cut(strings.TrimSpace(input), ":")
	row, err := strconv.ParseUint(strings.TrimSpace(rowText), 10, 32)
	if err != nil {
		return &CommandError{Op: "goto", Input: input, Err: err}
	}
	col := uint64(0)
	if hasCol {
		if col, err = strconv.ParseUint(strings.TrimSpace(colText), 10, 32); err != nil {
			return &CommandError{Op: "goto", Input: input, Err: err}
		}
	}
	r.Cursor.Y = min(max(int(row)-1, 0), r.Buf.Len()-1)
	if hasCol {
		r.moveToRender(max(int(col)-1, 0))
	}
	r.clampX()
	return nil
}
