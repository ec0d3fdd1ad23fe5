package app

import "fmt"

// IOError reports a failed file operation on path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// CommandError reports a prompt command that could not be carried out:
// unparsable go-to input or a command that failed to start.
type CommandError struct {
	Op    string
	Input string
	Err   error
}

func (e *CommandError) Error() string { return fmt.Sprintf("%s %q: %v", e.Op, e.Input, e.Err) }

func (e *CommandError) Unwrap() error { return e.Err }
