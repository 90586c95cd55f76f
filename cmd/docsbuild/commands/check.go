package commands

import (
	"context"
	"fmt"

	"github.com/weygoldt/thunderfish/internal/tool"
)

// CheckCmd reports availability of the external generators without building.
type CheckCmd struct{}

func (c *CheckCmd) Run(_ *Global, _ *CLI) error {
	ctx := context.Background()
	for _, name := range []string{tool.MkDocs, tool.Pdoc} {
		st := tool.Check(ctx, name)
		if !st.Available {
			fmt.Printf("%s: not installed (install with: %s)\n", name, tool.InstallHint(name))
			continue
		}
		version := st.Version
		if version == "" {
			version = "unknown version"
		}
		fmt.Printf("%s: %s (%s)\n", name, st.Path, version)
	}
	return nil
}
