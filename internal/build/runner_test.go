package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weygoldt/thunderfish/internal/metrics"
	"github.com/weygoldt/thunderfish/internal/tool"
)

// fakeStage is a scriptable stage for runner tests.
type fakeStage struct {
	name StageName
	tool string
	desc string
	fn   func(ctx context.Context, st *State) error
	runs int
}

func (f *fakeStage) Name() StageName      { return f.name }
func (f *fakeStage) Tool() string         { return f.tool }
func (f *fakeStage) Description() string  { return f.desc }
func (f *fakeStage) Run(ctx context.Context, st *State) error {
	f.runs++
	if f.fn == nil {
		return nil
	}
	return f.fn(ctx, st)
}

// captureRecorder records metric emissions for assertions.
type captureRecorder struct {
	mu       sync.Mutex
	stages   map[string]metrics.ResultLabel
	outcomes []string
}

func newCaptureRecorder() *captureRecorder {
	return &captureRecorder{stages: make(map[string]metrics.ResultLabel)}
}

func (c *captureRecorder) ObserveStageDuration(string, time.Duration) {}
func (c *captureRecorder) ObserveBuildDuration(time.Duration)         {}
func (c *captureRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages[stage] = result
}
func (c *captureRecorder) IncBuildOutcome(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, outcome)
}

func availableChecker(ctx context.Context, name string) tool.Status {
	return tool.Status{Name: name, Available: true, Path: "/usr/bin/" + name}
}

func absentChecker(ctx context.Context, name string) tool.Status {
	return tool.Status{Name: name}
}

func newTestState() *State {
	return &State{Root: "/pkg", OutputDir: "/pkg/site", Package: "thunderfish", Report: NewReport()}
}

func TestRunner_AllStagesSucceed(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out, nil).WithToolChecker(availableChecker)
	st := newTestState()

	s1 := &fakeStage{name: StageGeneralDocs, tool: "mkdocs", desc: "Building general documentation with mkdocs"}
	s2 := &fakeStage{name: StageAPIDocs, tool: "pdoc", desc: "Building API reference with pdoc"}

	err := r.Run(context.Background(), st, []Stage{s1, s2})
	require.NoError(t, err)

	assert.Equal(t, 1, s1.runs)
	assert.Equal(t, 1, s2.runs)
	assert.False(t, st.Report.Failed())
	assert.Equal(t, OutcomeSuccess, st.Report.Outcome)
	assert.Contains(t, out.String(), "Building general documentation with mkdocs...")
	assert.Contains(t, out.String(), "Building API reference with pdoc...")
}

func TestRunner_MissingToolSkipsStageAndContinues(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out, nil).WithToolChecker(func(ctx context.Context, name string) tool.Status {
		if name == "mkdocs" {
			return tool.Status{Name: name}
		}
		return availableChecker(ctx, name)
	})
	st := newTestState()

	general := &fakeStage{name: StageGeneralDocs, tool: "mkdocs", desc: "Building general documentation with mkdocs"}
	api := &fakeStage{name: StageAPIDocs, tool: "pdoc", desc: "Building API reference with pdoc"}

	err := r.Run(context.Background(), st, []Stage{general, api})
	require.NoError(t, err)

	assert.Equal(t, 0, general.runs, "skipped stage must not run")
	assert.Equal(t, 1, api.runs, "later stage must still attempt its work")
	assert.False(t, st.Report.Failed(), "tool absence is not a failure")
	assert.Equal(t, OutcomePartial, st.Report.Outcome)
	assert.Contains(t, out.String(), "WARNING: mkdocs not found")
	assert.Contains(t, out.String(), "pip install mkdocs")
}

func TestRunner_FailedStageDoesNotBlockLaterStages(t *testing.T) {
	var out bytes.Buffer
	rec := newCaptureRecorder()
	r := NewRunner(&out, rec).WithToolChecker(availableChecker)
	st := newTestState()

	general := &fakeStage{
		name: StageGeneralDocs, tool: "mkdocs", desc: "general docs",
		fn: func(context.Context, *State) error {
			return FailStage(StageGeneralDocs, errors.New("bad config"))
		},
	}
	api := &fakeStage{name: StageAPIDocs, tool: "pdoc", desc: "api docs"}

	err := r.Run(context.Background(), st, []Stage{general, api})
	require.NoError(t, err, "generator failure is surfaced via the report, not an abort")

	assert.Equal(t, 1, api.runs, "api stage still attempted after general docs failure")
	assert.True(t, st.Report.Failed())
	assert.Equal(t, OutcomeFailed, st.Report.Outcome)
	assert.Equal(t, metrics.ResultFailed, rec.stages[string(StageGeneralDocs)])
	assert.Equal(t, metrics.ResultSuccess, rec.stages[string(StageAPIDocs)])
	assert.Equal(t, []string{OutcomeFailed}, rec.outcomes)
}

func TestRunner_WarningStageKeepsSuccess(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil).WithToolChecker(availableChecker)
	st := newTestState()

	s := &fakeStage{
		name: StageVerifyLinks, desc: "verify",
		fn: func(context.Context, *State) error {
			return WarnStage(StageVerifyLinks, errors.New("2 broken internal links"))
		},
	}

	err := r.Run(context.Background(), st, []Stage{s})
	require.NoError(t, err)
	assert.False(t, st.Report.Failed())
	assert.Equal(t, OutcomeSuccess, st.Report.Outcome)
}

func TestRunner_FatalStageAborts(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil).WithToolChecker(availableChecker)
	st := newTestState()

	s1 := &fakeStage{
		name: StageGeneralDocs, desc: "general docs",
		fn: func(context.Context, *State) error {
			return fmt.Errorf("disk gone") // unknown errors wrap as fatal
		},
	}
	s2 := &fakeStage{name: StageAPIDocs, desc: "api docs"}

	err := r.Run(context.Background(), st, []Stage{s1, s2})
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorFatal, se.Kind)
	assert.Equal(t, 0, s2.runs, "fatal abort must not run later stages")
	assert.Equal(t, OutcomeFailed, st.Report.Outcome)
}

func TestRunner_ContextCancellation(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, nil).WithToolChecker(availableChecker)
	st := newTestState()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &fakeStage{name: StageGeneralDocs, desc: "general docs"}
	err := r.Run(ctx, st, []Stage{s})
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorCanceled, se.Kind)
	assert.Equal(t, 0, s.runs)
	assert.Equal(t, OutcomeCanceled, st.Report.Outcome)
}

func TestRunner_StageWithoutToolAlwaysRuns(t *testing.T) {
	// The checker would report everything absent; a tool-less stage must not
	// consult it at all.
	r := NewRunner(&bytes.Buffer{}, nil).WithToolChecker(absentChecker)
	st := newTestState()

	s := &fakeStage{name: StageVerifyLinks, desc: "verify"}
	err := r.Run(context.Background(), st, []Stage{s})
	require.NoError(t, err)
	assert.Equal(t, 1, s.runs)
}
