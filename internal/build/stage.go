// Package build contains the stage framework and runner that orchestrate the
// documentation assembly pipeline.
package build

import (
	"context"
	"fmt"
)

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StageGeneralDocs StageName = "general_docs"
	StageAPIDocs     StageName = "api_docs"
	StageVerifyLinks StageName = "verify_links"
)

// Stage is a discrete unit of work in the site build. Stages share a uniform
// contract so they can be added, reordered, or run conditionally without
// special-casing each tool's invocation syntax.
type Stage interface {
	Name() StageName
	// Tool names the external executable gating this stage. A stage with an
	// empty Tool always runs; otherwise the runner skips the stage with a
	// warning when the tool is not on PATH.
	Tool() string
	Description() string
	Run(ctx context.Context, st *State) error
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorFailed   StageErrorKind = "failed"   // Run is failed; remaining stages still attempt.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Helpers to classify errors.

func FatalStage(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func FailStage(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFailed, Stage: stage, Err: err}
}

func WarnStage(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func CanceledStage(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}
