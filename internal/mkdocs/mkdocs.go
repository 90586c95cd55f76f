// Package mkdocs implements the general-documentation stage: it invokes the
// mkdocs site builder against the fixed configuration file, writing directly
// into the output directory.
package mkdocs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/weygoldt/thunderfish/internal/build"
	"github.com/weygoldt/thunderfish/internal/config"
	"github.com/weygoldt/thunderfish/internal/errors"
	"github.com/weygoldt/thunderfish/internal/tool"
)

// Runner abstracts the mkdocs invocation so tests can substitute the external
// binary without changing stage orchestration.
type Runner interface {
	Build(ctx context.Context, root, configPath, outputDir string) error
}

// BinaryRunner invokes the `mkdocs` binary present on PATH. The subprocess
// working directory is set explicitly; the orchestrator process never changes
// its own working directory.
type BinaryRunner struct{}

func (BinaryRunner) Build(ctx context.Context, root, configPath, outputDir string) error {
	cmd := exec.CommandContext(ctx, tool.MkDocs, "build", "-f", configPath, "-d", outputDir)
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Invoking mkdocs", "dir", root, "config", configPath, "output", outputDir)

	err := cmd.Run()

	if out := stdout.String(); out != "" {
		slog.Debug("mkdocs stdout", "output", out)
	}
	if errOut := stderr.String(); errOut != "" {
		slog.Warn("mkdocs stderr", "error_output", errOut)
	}

	if err != nil {
		output := stderr.String()
		if output == "" {
			output = stdout.String()
		}
		if output != "" {
			return fmt.Errorf("mkdocs build failed: %w: %s", err, output)
		}
		return fmt.Errorf("mkdocs build failed: %w", err)
	}
	return nil
}

// Stage is the general-documentation build stage.
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

func (s *Stage) Name() build.StageName { return build.StageGeneralDocs }
func (s *Stage) Tool() string          { return tool.MkDocs }
func (s *Stage) Description() string   { return "Building general documentation with mkdocs" }

// Run invokes mkdocs against the package root. A non-zero exit marks the run
// failed but does not abort later stages.
func (s *Stage) Run(ctx context.Context, st *build.State) error {
	configPath := filepath.Join(st.Root, config.FileName)
	if err := s.runner.Build(ctx, st.Root, configPath, st.OutputDir); err != nil {
		return build.FailStage(s.Name(), errors.GeneratorFailed(tool.MkDocs, err))
	}
	slog.Info("General documentation built", "output", st.OutputDir)
	return nil
}
