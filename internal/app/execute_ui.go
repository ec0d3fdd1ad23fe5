package app

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Executor runs a command line and returns what it printed. A non-nil
// error means the command failed to start or exited with a non-zero
// status.
type Executor interface {
	Run(command string) (stdout, stderr []byte, err error)
}

// ShellExecutor runs commands through Shell -c, or $SHELL, or /bin/sh.
type ShellExecutor struct {
	Shell string
}

// Run blocks until the command exits. There is no timeout.
func (e ShellExecutor) Run(command string) ([]byte, []byte, error) {
	shell := e.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			err = &CommandError{Op: "execute", Input: command, Err: err}
		}
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// finishExecute runs the command once the execute prompt completes.
func (r *Runner) finishExecute(cmd *ExecuteCommand, state promptState) {
	if state == promptActive {
		return
	}
	r.endCommand(state)
	if state == promptCancelled || cmd.Input == "" {
		return
	}
	r.execute(cmd.Input)
}

// execute inserts the output of command at the cursor. On failure the
// buffer is left alone and the error output becomes the status message.
func (r *Runner) execute(command string) {
	r.Logger.Event("execute.start", map[string]any{"command": command})
	stdout, stderr, err := r.Executor.Run(command)
	if err != nil {
		msg := strings.TrimSpace(ansi.Strip(string(stderr)))
		if msg == "" {
			msg = err.Error()
		}
		r.Logger.Event("execute.error", map[string]any{"command": command, "error": err.Error()})
		r.setStatus("%s", msg)
		return
	}
	r.insertBytes(stdout)
	r.Logger.Event("execute.success", map[string]any{"command": command, "bytes": len(stdout)})
}

// insertBytes types p at the cursor; newlines split rows.
func (r *Runner) insertBytes(p []byte) {
	for _, c := range p {
		if c == '\n' {
			r.insertNewline()
		} else {
			r.insertByte(c)
		}
	}
}
