package working_dir

import (
	"fmt"
	"os"
	"path/filepath"
	"stem-split-worker/src/lib/cerr"
	"strings"

	"github.com/apex/log"
)

const (
	inputDirName  = "input"
	outputDirName = "output"
)

type WorkingDir struct {
	root string
}

func NewWorkingDir(root string) (WorkingDir, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return WorkingDir{}, cerr.Wrap(err).Error("Failed to generate absolute path for working directory")
	}

	if err := os.MkdirAll(filepath.Join(absRoot, "tmp"), os.ModePerm); err != nil {
		return WorkingDir{}, cerr.Field("root", absRoot).
			Wrap(err).Error("Failed to create working directory")
	}

	return WorkingDir{
		root: absRoot,
	}, nil
}

func (w WorkingDir) Root() string {
	return w.root
}

func (w WorkingDir) TempDir() string {
	return filepath.Join(w.root, "tmp")
}

// NewWorkspace creates a fresh directory named "<prefix>_<random>" under the
// temp dir, holding empty input and output directories.
// Callers own it and must Release it.
func (w WorkingDir) NewWorkspace(prefix string) (Workspace, error) {
	pattern := fmt.Sprintf("%s_*", sanitizePrefix(prefix))
	workspaceRoot, err := os.MkdirTemp(w.TempDir(), pattern)
	if err != nil {
		return Workspace{}, cerr.Field("pattern", pattern).
			Wrap(err).Error("Failed to create a temporary workspace")
	}

	workspace := Workspace{root: workspaceRoot}

	for _, dir := range []string{workspace.InputDir(), workspace.OutputDir()} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			workspace.Release()
			return Workspace{}, cerr.Field("dir", dir).
				Wrap(err).Error("Failed to create workspace directory")
		}
	}

	return workspace, nil
}

func sanitizePrefix(prefix string) string {
	prefix = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, prefix)

	if prefix == "" {
		return "job"
	}

	return prefix
}

type Workspace struct {
	root string
}

func (w Workspace) Root() string {
	return w.root
}

func (w Workspace) InputDir() string {
	return filepath.Join(w.root, inputDirName)
}

func (w Workspace) OutputDir() string {
	return filepath.Join(w.root, outputDirName)
}

// Release removes the workspace tree. Failures are logged only, they must not
// replace the outcome of the job that owned the workspace.
func (w Workspace) Release() {
	if w.root == "" {
		return
	}

	if err := os.RemoveAll(w.root); err != nil {
		log.WithField("workspace", w.root).
			WithError(err).
			Error("Failed to remove workspace")
	}
}
