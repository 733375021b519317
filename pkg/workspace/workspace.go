// Package workspace provides disposable directories for transient clone
// metadata.
//
// A [Workspace] is acquired, used, and released. Release is best-effort:
// removal failures are logged and swallowed.
//
//	err := workspace.With("dependents-clone", logger, func(dir string) error {
//	    _, err := git.PlainInit(dir, true)
//	    return err
//	})
package workspace

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

// Workspace is an empty, uniquely named temporary directory.
type Workspace struct {
	dir    string
	logger *log.Logger
}

// Acquire creates a new workspace under the system temp directory. prefix
// becomes part of the directory name. A nil logger discards release warnings.
func Acquire(prefix string, logger *log.Logger) (*Workspace, error) {
	dir, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create workspace")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Workspace{dir: dir, logger: logger}, nil
}

// Path returns the workspace directory.
func (w *Workspace) Path() string { return w.dir }

// Release removes the workspace and everything in it. Failures are logged,
// never returned. Releasing twice is harmless.
func (w *Workspace) Release() {
	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Warn("workspace cleanup failed", "dir", w.dir, "err", err)
	}
}

// With acquires a workspace, runs fn inside it, and releases it on every exit
// path, including a panic unwinding through fn.
func With(prefix string, logger *log.Logger, fn func(dir string) error) error {
	w, err := Acquire(prefix, logger)
	if err != nil {
		return err
	}
	defer w.Release()
	return fn(w.Path())
}
