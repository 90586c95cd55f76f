package verify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weygoldt/thunderfish/internal/build"
)

// Stage runs link verification as an optional final build stage. Issues are
// surfaced as a stage warning; they never fail the run.
type Stage struct{}

func NewStage() *Stage { return &Stage{} }

func (*Stage) Name() build.StageName { return build.StageVerifyLinks }
func (*Stage) Tool() string          { return "" }
func (*Stage) Description() string   { return "Verifying internal links" }

func (*Stage) Run(_ context.Context, st *build.State) error {
	issues, err := Site(st.OutputDir)
	if err != nil {
		return build.WarnStage(build.StageVerifyLinks, fmt.Errorf("link verification incomplete: %w", err))
	}
	for _, issue := range issues {
		slog.Warn("Broken internal link", "page", issue.Page, "link", issue.Link, "target", issue.Target)
	}
	if len(issues) > 0 {
		return build.WarnStage(build.StageVerifyLinks, fmt.Errorf("%d broken internal links", len(issues)))
	}
	slog.Info("Internal links verified", "site", st.OutputDir)
	return nil
}
