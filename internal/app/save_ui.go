package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// finishSave acts on the Save prompt once its input is complete.
func (r *Runner) finishSave(cmd *SaveCommand, state promptState) {
	switch state {
	case promptActive:
		return
	case promptCompleted:
		if cmd.Input != "" {
			r.endCommand(state)
			r.saveAs(cmd.Input)
			return
		}
		state = promptCancelled
	}
	r.endCommand(state)
	r.setStatus("Save aborted")
}

// save writes to the current file, asking for a path first if there is
// none.
func (r *Runner) save() {
	if r.FilePath == "" {
		r.startCommand(&SaveCommand{})
		return
	}
	r.saveAs(r.FilePath)
}

// saveAs writes the buffer to path and makes it the current file. The
// highlighting rules are picked again from the extension and every row is
// re-highlighted.
func (r *Runner) saveAs(path string) {
	r.Logger.Event("save.attempt", map[string]any{"file": path})
	n, err := r.writeFile(path)
	if err != nil {
		r.Logger.Event("save.error", map[string]any{"file": path, "error": err.Error()})
		r.setStatus("Can't save! I/O error: %v", err)
		return
	}
	r.Buf.SetRules(r.Syntaxes.ForPath(path))
	r.FilePath = path
	r.Dirty = false
	r.Logger.Event("save.success", map[string]any{"file": path, "bytes": n})
	r.setStatus("%d bytes written to %s", n, path)
}

// writeFile replaces path with the buffer contents through a temporary
// file in the same directory. An existing file keeps its permissions.
func (r *Runner) writeFile(path string) (int64, error) {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, &IOError{Op: "stat", Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, &IOError{Op: "create", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	n, err := r.Buf.WriteTo(tmp)
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, &IOError{Op: "rename", Path: path, Err: err}
	}
	return n, nil
}
