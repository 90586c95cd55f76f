package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/weygoldt/thunderfish/internal/metrics"
	"github.com/weygoldt/thunderfish/internal/tool"
)

// Runner executes stages in order, recording timing and outcomes. A missing
// tool skips its stage with a warning; a generator failure marks the run
// failed but lets independent later stages still attempt their work; only
// fatal errors abort.
type Runner struct {
	Out      io.Writer
	Recorder metrics.Recorder

	// checkTool is swappable for tests.
	checkTool func(ctx context.Context, name string) tool.Status
}

// NewRunner constructs a Runner writing progress to out (os.Stdout when nil).
func NewRunner(out io.Writer, rec metrics.Recorder) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Runner{Out: out, Recorder: rec, checkTool: tool.Check}
}

// WithToolChecker overrides tool availability checking (tests).
func (r *Runner) WithToolChecker(fn func(ctx context.Context, name string) tool.Status) *Runner {
	if fn != nil {
		r.checkTool = fn
	}
	return r
}

// Run executes the stages against the shared state. The returned error is
// non-nil only for fatal aborts or cancellation; generator failures surface
// through st.Report.Failed().
func (r *Runner) Run(ctx context.Context, st *State, stages []Stage) error {
	for _, s := range stages {
		select {
		case <-ctx.Done():
			se := CanceledStage(s.Name(), ctx.Err())
			st.Report.record(s.Name(), StageResultCanceled, se.Err.Error(), r.Recorder)
			r.finish(st)
			return se
		default:
		}

		if name := s.Tool(); name != "" {
			status := r.checkTool(ctx, name)
			if !status.Available {
				fmt.Fprintf(r.Out, "WARNING: %s not found; skipping %s (install with: %s)\n",
					name, s.Description(), tool.InstallHint(name))
				slog.Warn("Tool not available, skipping stage",
					"tool", name, "stage", string(s.Name()), "install", tool.InstallHint(name))
				st.Report.record(s.Name(), StageResultSkipped, name+" not installed", r.Recorder)
				continue
			}
			slog.Debug("Tool available", "tool", name, "path", status.Path, "version", status.Version)
		}

		fmt.Fprintf(r.Out, "%s...\n", s.Description())
		t0 := time.Now()
		err := s.Run(ctx, st)
		dur := time.Since(t0)
		st.Report.Durations[s.Name()] = dur
		r.Recorder.ObserveStageDuration(string(s.Name()), dur)

		if err == nil {
			st.Report.record(s.Name(), StageResultSuccess, "", r.Recorder)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = FatalStage(s.Name(), err)
		}
		switch se.Kind {
		case StageErrorWarning:
			slog.Warn("Stage completed with warning", "stage", string(s.Name()), "error", se.Err)
			st.Report.record(s.Name(), StageResultWarning, se.Err.Error(), r.Recorder)
		case StageErrorFailed:
			slog.Error("Stage failed", "stage", string(s.Name()), "error", se.Err)
			st.Report.record(s.Name(), StageResultFailed, se.Err.Error(), r.Recorder)
		case StageErrorCanceled:
			st.Report.record(s.Name(), StageResultCanceled, se.Err.Error(), r.Recorder)
			r.finish(st)
			return se
		default:
			slog.Error("Stage aborted build", "stage", string(s.Name()), "error", se.Err)
			st.Report.record(s.Name(), StageResultFatal, se.Err.Error(), r.Recorder)
			r.finish(st)
			return se
		}
	}

	r.finish(st)
	return nil
}

func (r *Runner) finish(st *State) {
	st.Report.finish()
	r.Recorder.ObserveBuildDuration(st.Report.Duration)
	r.Recorder.IncBuildOutcome(st.Report.Outcome)
}
