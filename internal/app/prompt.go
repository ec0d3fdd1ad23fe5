package app

import (
	"unicode/utf8"

	"example.com/rabi/pkg/config"
	"example.com/rabi/pkg/keys"
	"github.com/gdamore/tcell/v2"
)

// Command is the prompt the Runner is in, if any. The variants are
// *SaveCommand, *FindCommand, *GoToCommand and *ExecuteCommand.
type Command interface {
	// Prompt is the label shown before the input in the message bar.
	Prompt() string
	// Text is the input typed so far.
	Text() string
	command()
}

// SaveCommand asks for the path to save to.
type SaveCommand struct{ Input string }

// FindCommand searches as the query is typed. Saved is the cursor to go
// back to on cancel; LastMatch is the row of the current match or -1.
type FindCommand struct {
	Input     string
	Saved     Cursor
	LastMatch int
}

// GoToCommand asks for "row[:col]".
type GoToCommand struct{ Input string }

// ExecuteCommand asks for a shell command whose output is inserted.
type ExecuteCommand struct{ Input string }

func (*SaveCommand) Prompt() string    { return "Save as: " }
func (*FindCommand) Prompt() string    { return "Search (Use ESC/Arrows/Enter): " }
func (*GoToCommand) Prompt() string    { return "Enter line number[:column]: " }
func (*ExecuteCommand) Prompt() string { return "Command to execute: " }

func (c *SaveCommand) Text() string    { return c.Input }
func (c *FindCommand) Text() string    { return c.Input }
func (c *GoToCommand) Text() string    { return c.Input }
func (c *ExecuteCommand) Text() string { return c.Input }

func (*SaveCommand) command()    {}
func (*FindCommand) command()    {}
func (*GoToCommand) command()    {}
func (*ExecuteCommand) command() {}

type promptState int

const (
	promptActive promptState = iota
	promptCompleted
	promptCancelled
)

func (s promptState) String() string {
	switch s {
	case promptCompleted:
		return "completed"
	case promptCancelled:
		return "cancelled"
	}
	return "active"
}

// editPrompt applies one key to a prompt input. Printable bytes are
// appended, Backspace drops the last character, Enter completes, and
// Escape or the quit key cancels. Other keys leave the input as is.
func editPrompt(input string, ev *tcell.EventKey, quit config.Keybinding) (string, promptState) {
	switch {
	case ev.Key() == tcell.KeyEnter:
		return input, promptCompleted
	case ev.Key() == tcell.KeyEsc, quit.Matches(ev):
		return input, promptCancelled
	case keys.IsBackspace(ev):
		if input != "" {
			_, size := utf8.DecodeLastRuneInString(input)
			input = input[:len(input)-size]
		}
	case keys.IsPrintable(ev):
		input += string([]byte{byte(ev.Rune())})
	}
	return input, promptActive
}

// startCommand enters a prompt.
func (r *Runner) startCommand(cmd Command) {
	r.Command = cmd
	r.Logger.Event("prompt.start", map[string]any{"prompt": cmd.Prompt()})
}

// handleCommandKey gives ev to the active prompt.
func (r *Runner) handleCommandKey(ev *tcell.EventKey) {
	quit := r.Config.Keymap["quit"]
	switch cmd := r.Command.(type) {
	case *SaveCommand:
		input, state := editPrompt(cmd.Input, ev, quit)
		cmd.Input = input
		r.finishSave(cmd, state)
	case *FindCommand:
		r.findKey(cmd, ev, quit)
	case *GoToCommand:
		input, state := editPrompt(cmd.Input, ev, quit)
		cmd.Input = input
		r.finishGoTo(cmd, state)
	case *ExecuteCommand:
		input, state := editPrompt(cmd.Input, ev, quit)
		cmd.Input = input
		r.finishExecute(cmd, state)
	}
}

// endCommand leaves the active prompt.
func (r *Runner) endCommand(state promptState) {
	if r.Command != nil {
		r.Logger.Event("prompt.end", map[string]any{"prompt": r.Command.Prompt(), "state": state.String()})
	}
	r.Command = nil
}
