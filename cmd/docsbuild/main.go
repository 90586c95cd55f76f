// Command docsbuild assembles the static documentation site for the
// thunderfish package: mkdocs builds the narrative documentation, pdoc adds
// the API reference under site/api. The exit code is consumed by CI: 0 on
// success, 1 when an invoked generator failed, 2 for environment problems.
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/weygoldt/thunderfish/cmd/docsbuild/commands"
	"github.com/weygoldt/thunderfish/internal/errors"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("docsbuild"),
		kong.Description("Assemble the thunderfish documentation site."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
