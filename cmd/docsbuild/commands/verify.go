package commands

import (
	"fmt"
	"os"

	"github.com/weygoldt/thunderfish/internal/errors"
	"github.com/weygoldt/thunderfish/internal/verify"
	"github.com/weygoldt/thunderfish/internal/workspace"
)

// VerifyCmd checks an already-built site for broken internal links.
type VerifyCmd struct{}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	dir, err := workspace.Resolve(root.Root)
	if err != nil {
		return err
	}
	siteDir := workspace.NewManager(dir).OutputDir()

	if _, err := os.Stat(siteDir); err != nil {
		return errors.New(errors.CategoryFileSystem, errors.SeverityError,
			"no generated site to verify; run a build first").WithContext("path", siteDir)
	}

	issues, err := verify.Site(siteDir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "link verification failed")
	}
	if len(issues) == 0 {
		fmt.Println("No broken internal links")
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("WARNING: %s\n", issue)
	}
	fmt.Printf("%d broken internal links found\n", len(issues))
	return nil
}
