package commands

import (
	"fmt"

	"github.com/weygoldt/thunderfish/internal/workspace"
)

// CleanCmd removes the output directory without building.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	dir, err := workspace.Resolve(root.Root)
	if err != nil {
		return err
	}
	mgr := workspace.NewManager(dir)
	if err := mgr.Remove(); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", mgr.OutputDir())
	return nil
}
