package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weygoldt/thunderfish/internal/build"
)

func TestStage_CleanSiteSucceeds(t *testing.T) {
	root := t.TempDir()
	site := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(site, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"),
		[]byte(`<a href="#top">top</a>`), 0o600))

	st := &build.State{Root: root, OutputDir: site, Report: build.NewReport()}
	err := NewStage().Run(context.Background(), st)
	assert.NoError(t, err)
}

func TestStage_BrokenLinksAreAWarning(t *testing.T) {
	root := t.TempDir()
	site := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(site, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"),
		[]byte(`<a href="missing.html">gone</a>`), 0o600))

	st := &build.State{Root: root, OutputDir: site, Report: build.NewReport()}
	err := NewStage().Run(context.Background(), st)
	require.Error(t, err)

	var se *build.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, build.StageErrorWarning, se.Kind, "broken links never fail the build")
}
