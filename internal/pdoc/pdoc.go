// Package pdoc implements the API-reference stage: it invokes the pdoc
// extractor in HTML mode against the package, then relocates the generated
// package-named subtree from a temporary container to OutputDir/api.
package pdoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/weygoldt/thunderfish/internal/build"
	"github.com/weygoldt/thunderfish/internal/errors"
	"github.com/weygoldt/thunderfish/internal/tool"
)

const (
	// TempDirName is the transient container pdoc writes into. It must never
	// remain after the stage completes, success or failure.
	TempDirName = "api-tmp"

	// DirName is the final API reference location inside the output directory.
	DirName = "api"
)

// Runner abstracts the pdoc invocation.
type Runner interface {
	Generate(ctx context.Context, root, pkg, outputDir string) error
}

// BinaryRunner invokes the `pdoc` binary present on PATH, configured for
// mathematical-notation rendering and insertion-ordered member listing.
type BinaryRunner struct{}

func (BinaryRunner) Generate(ctx context.Context, root, pkg, outputDir string) error {
	cmd := exec.CommandContext(ctx, tool.Pdoc,
		"--html",
		"--config", "latex_math=True",
		"--config", "sort_identifiers=False",
		"--output-dir", outputDir,
		pkg)
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Invoking pdoc", "dir", root, "package", pkg, "output", outputDir)

	err := cmd.Run()

	if out := stdout.String(); out != "" {
		slog.Debug("pdoc stdout", "output", out)
	}
	if errOut := stderr.String(); errOut != "" {
		slog.Warn("pdoc stderr", "error_output", errOut)
	}

	if err != nil {
		output := stderr.String()
		if output == "" {
			output = stdout.String()
		}
		if output != "" {
			return fmt.Errorf("pdoc failed: %w: %s", err, output)
		}
		return fmt.Errorf("pdoc failed: %w", err)
	}
	return nil
}

// Stage is the API-reference build stage.
type Stage struct {
	runner Runner
}

// NewStage constructs the stage with the real binary runner.
func NewStage() *Stage {
	return &Stage{runner: BinaryRunner{}}
}

// WithRunner injects a custom runner (tests).
func (s *Stage) WithRunner(r Runner) *Stage {
	if r != nil {
		s.runner = r
	}
	return s
}

func (s *Stage) Name() build.StageName { return build.StageAPIDocs }
func (s *Stage) Tool() string          { return tool.Pdoc }
func (s *Stage) Description() string   { return "Building API reference with pdoc" }

// Run generates the API reference into OutputDir/api-tmp, relocates the
// single expected package-named subdirectory to OutputDir/api, and removes
// the temporary container on every exit path. A missing expected subtree is
// a stage error, not a silent skip.
func (s *Stage) Run(ctx context.Context, st *build.State) error {
	tmpDir := filepath.Join(st.OutputDir, TempDirName)
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			slog.Warn("Failed to remove temporary API container", "path", tmpDir, "error", err)
		}
	}()

	if err := s.runner.Generate(ctx, st.Root, st.Package, tmpDir); err != nil {
		return build.FailStage(s.Name(), errors.GeneratorFailed(tool.Pdoc, err))
	}

	src := filepath.Join(tmpDir, st.Package)
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", src)
		}
		return build.FailStage(s.Name(), errors.StructureMismatch(src, err))
	}

	dst := filepath.Join(st.OutputDir, DirName)
	if err := os.Rename(src, dst); err != nil {
		return build.FailStage(s.Name(),
			errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "relocating API reference").
				WithContext("from", src).WithContext("to", dst))
	}

	slog.Info("API reference built", "output", dst)
	return nil
}
