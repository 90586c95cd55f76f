package build

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weygoldt/thunderfish/internal/metrics"
)

// StageResult enumerates per-stage classification outcomes. Mirrors
// metrics.ResultLabel values to simplify emission.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultSkipped  StageResult = "skipped"
	StageResultFailed   StageResult = "failed"
	StageResultFatal    StageResult = "fatal"
	StageResultWarning  StageResult = "warning"
	StageResultCanceled StageResult = "canceled"
)

// Build outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomePartial  = "partial" // all invoked stages succeeded but at least one was skipped
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// StageOutcome records the classification of one stage run.
type StageOutcome struct {
	Stage  StageName
	Result StageResult
	Detail string
}

// Report aggregates per-stage outcomes and timings for one build.
type Report struct {
	BuildID   string
	Outcomes  []StageOutcome
	Durations map[StageName]time.Duration
	Outcome   string
	Duration  time.Duration

	start time.Time
}

// NewReport constructs a Report with a fresh build ID.
func NewReport() *Report {
	return &Report{
		BuildID:   uuid.NewString(),
		Durations: make(map[StageName]time.Duration),
		start:     time.Now(),
	}
}

// record appends a stage outcome and emits metrics.
func (r *Report) record(stage StageName, res StageResult, detail string, rec metrics.Recorder) {
	r.Outcomes = append(r.Outcomes, StageOutcome{Stage: stage, Result: res, Detail: detail})
	if rec != nil {
		rec.IncStageResult(string(stage), metrics.ResultLabel(res))
	}
}

// Failed reports whether any invoked stage failed or aborted. Skipped stages
// never count as failure.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		switch o.Result {
		case StageResultFailed, StageResultFatal, StageResultCanceled:
			return true
		}
	}
	return false
}

// Skipped reports whether any stage was skipped due to a missing tool.
func (r *Report) Skipped() bool {
	for _, o := range r.Outcomes {
		if o.Result == StageResultSkipped {
			return true
		}
	}
	return false
}

// finish freezes the total duration and derives the build outcome.
func (r *Report) finish() {
	r.Duration = time.Since(r.start)
	r.Outcome = r.deriveOutcome()
}

func (r *Report) deriveOutcome() string {
	for _, o := range r.Outcomes {
		if o.Result == StageResultCanceled {
			return OutcomeCanceled
		}
	}
	if r.Failed() {
		return OutcomeFailed
	}
	if r.Skipped() {
		return OutcomePartial
	}
	return OutcomeSuccess
}

// Summary renders a human-readable build summary including the pointer to the
// generated entry page.
func (r *Report) Summary(outputDir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build %s: %s (%.2fs)\n", r.BuildID, r.Outcome, r.Duration.Seconds())
	for _, o := range r.Outcomes {
		line := fmt.Sprintf("  %-14s %s", o.Stage, o.Result)
		if d, ok := r.Durations[o.Stage]; ok && o.Result != StageResultSkipped {
			line += fmt.Sprintf(" (%.2fs)", d.Seconds())
		}
		if o.Detail != "" {
			line += " - " + o.Detail
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "Documentation entry page: file://%s\n", filepath.Join(outputDir, "index.html"))
	return b.String()
}
