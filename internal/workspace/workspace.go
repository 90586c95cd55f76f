package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/weygoldt/thunderfish/internal/errors"
)

// OutputDirName is the fixed output directory name under the package root.
const OutputDirName = "site"

// Resolve computes the package root. With an empty override it is the
// canonical (symlink-resolved, absolute) directory containing the running
// executable, independent of the caller's working directory. A non-empty
// override is canonicalized the same way.
func Resolve(override string) (string, error) {
	var dir string
	if override != "" {
		dir = override
	} else {
		exe, err := os.Executable()
		if err != nil {
			return "", errors.WorkspaceUnresolvable(err)
		}
		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WorkspaceUnresolvable(err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.WorkspaceUnresolvable(err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.WorkspaceUnresolvable(err)
	}
	if !info.IsDir() {
		return "", errors.WorkspaceUnresolvable(fmt.Errorf("%s is not a directory", resolved))
	}
	return resolved, nil
}

// Manager handles the output directory lifecycle for one build.
type Manager struct {
	root      string
	outputDir string
}

// NewManager creates a workspace manager anchored at the package root.
func NewManager(root string) *Manager {
	return &Manager{
		root:      root,
		outputDir: filepath.Join(root, OutputDirName),
	}
}

// Root returns the package root.
func (m *Manager) Root() string {
	return m.root
}

// OutputDir returns the absolute output directory path.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// Clean removes the output directory tree if it exists (absence already
// satisfies the desired end state) and recreates it empty, including any
// missing parent segments.
func (m *Manager) Clean() error {
	if err := os.RemoveAll(m.outputDir); err != nil {
		return errors.EnvironmentError("remove output directory", err).
			WithContext("path", m.outputDir)
	}
	if err := os.MkdirAll(m.outputDir, 0o750); err != nil {
		return errors.EnvironmentError("create output directory", err).
			WithContext("path", m.outputDir)
	}
	slog.Debug("Prepared clean output directory", "path", m.outputDir)
	return nil
}

// Remove deletes the output directory without recreating it.
func (m *Manager) Remove() error {
	if err := os.RemoveAll(m.outputDir); err != nil {
		return errors.EnvironmentError("remove output directory", err).
			WithContext("path", m.outputDir)
	}
	return nil
}
