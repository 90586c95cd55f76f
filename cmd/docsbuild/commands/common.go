package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags. `build` is the default command so a plain
// zero-argument invocation assembles the site.
type CLI struct {
	Root    string           `help:"Package root directory (defaults to the directory containing the executable)"`
	Package string           `help:"Identity of the documented package" default:"thunderfish"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"1" help:"Assemble the documentation site (general docs + API reference)"`
	Check  CheckCmd  `cmd:"" help:"Report availability of the external documentation generators"`
	Clean  CleanCmd  `cmd:"" help:"Remove the output directory"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild the documentation whenever sources change"`
	Lint   LintCmd   `cmd:"" help:"Check markdown sources for broken relative links"`
	Verify VerifyCmd `cmd:"" help:"Check the generated site for broken internal links"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
