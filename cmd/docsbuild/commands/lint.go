package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/weygoldt/thunderfish/internal/config"
	"github.com/weygoldt/thunderfish/internal/lint"
	"github.com/weygoldt/thunderfish/internal/workspace"
)

// LintCmd checks the markdown sources for broken relative links. Advisory:
// always exits zero so it can run in CI alongside the build without changing
// the build's success signal.
type LintCmd struct{}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	dir, err := workspace.Resolve(root.Root)
	if err != nil {
		return err
	}

	cfg := &config.Config{DocsDir: config.DefaultDocsDir}
	if loaded, cerr := config.Load(dir); cerr == nil {
		cfg = loaded
	}
	docsPath := cfg.DocsPath(dir)

	if _, err := os.Stat(docsPath); err != nil {
		fmt.Printf("No docs directory at %s\n", docsPath)
		return nil
	}

	issues, err := lint.Docs(docsPath)
	if err != nil {
		slog.Warn("Lint incomplete", "error", err)
		return nil
	}
	if len(issues) == 0 {
		fmt.Println("No broken links in markdown sources")
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("WARNING: %s\n", issue)
	}
	fmt.Printf("%d broken links found\n", len(issues))
	return nil
}
