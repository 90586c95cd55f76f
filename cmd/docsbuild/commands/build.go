package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/weygoldt/thunderfish/internal/build"
	"github.com/weygoldt/thunderfish/internal/config"
	"github.com/weygoldt/thunderfish/internal/errors"
	"github.com/weygoldt/thunderfish/internal/metrics"
	"github.com/weygoldt/thunderfish/internal/mkdocs"
	"github.com/weygoldt/thunderfish/internal/pdoc"
	"github.com/weygoldt/thunderfish/internal/verify"
	"github.com/weygoldt/thunderfish/internal/workspace"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	VerifyLinks bool `name:"verify-links" help:"Verify internal links in the generated site after building"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	return RunBuild(context.Background(), BuildOptions{
		Root:        root.Root,
		Package:     root.Package,
		VerifyLinks: b.VerifyLinks,
	})
}

// BuildOptions parameterizes one build run. Out and Recorder are injectable
// for tests; both default sensibly when nil/empty.
type BuildOptions struct {
	Root        string // package root override; empty resolves the executable's directory
	Package     string
	VerifyLinks bool
	Out         io.Writer
	Recorder    metrics.Recorder
}

// RunBuild performs one full documentation assembly: resolve the workspace,
// clean the output directory, run both generator stages (each gated by its
// tool's availability), and report. Environment problems return a fatal
// BuildError (exit 2); a generator failure returns a generator BuildError
// (exit 1) after all independent stages have attempted their work.
func RunBuild(ctx context.Context, opts BuildOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	root, err := workspace.Resolve(opts.Root)
	if err != nil {
		return err
	}
	config.LoadEnv(root)

	pkg := opts.Package
	if pkg == "" {
		pkg = config.DefaultPackage
	}
	docsDir := config.DefaultDocsDir

	// The configuration file belongs to mkdocs; we only peek at it for the
	// site name and docs directory. When it is missing or malformed the
	// mkdocs invocation itself produces the authoritative failure, so loading
	// stays best-effort here.
	if cfg, cerr := config.Load(root); cerr != nil {
		slog.Warn("Could not read mkdocs configuration", "error", cerr)
	} else {
		docsDir = cfg.DocsDir
		fmt.Fprintf(out, "Building documentation for %s\n", cfg.SiteName)
	}

	mgr := workspace.NewManager(root)
	if err := mgr.Clean(); err != nil {
		return err
	}

	st := &build.State{
		Root:      root,
		OutputDir: mgr.OutputDir(),
		Package:   pkg,
		DocsDir:   docsDir,
		Report:    build.NewReport(),
	}
	slog.Info("Starting documentation build",
		"build_id", st.Report.BuildID, "root", root, "output", st.OutputDir, "package", pkg)

	stages := []build.Stage{
		mkdocs.NewStage(),
		pdoc.NewStage(),
	}
	if opts.VerifyLinks {
		stages = append(stages, verify.NewStage())
	}

	runner := build.NewRunner(out, opts.Recorder)
	if err := runner.Run(ctx, st, stages); err != nil {
		// The per-stage table is most valuable when diagnosing an abort.
		fmt.Fprint(out, st.Report.Summary(st.OutputDir))
		return errors.InternalError("documentation build aborted", err)
	}

	fmt.Fprint(out, st.Report.Summary(st.OutputDir))

	if st.Report.Failed() {
		return errors.New(errors.CategoryGenerator, errors.SeverityError,
			"documentation build completed with failures")
	}
	return nil
}
