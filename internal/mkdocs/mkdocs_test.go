package mkdocs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weygoldt/thunderfish/internal/build"
	berrors "github.com/weygoldt/thunderfish/internal/errors"
)

type runnerFunc func(ctx context.Context, root, configPath, outputDir string) error

func (f runnerFunc) Build(ctx context.Context, root, configPath, outputDir string) error {
	return f(ctx, root, configPath, outputDir)
}

func newState(t *testing.T) *build.State {
	t.Helper()
	root := t.TempDir()
	out := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(out, 0o750))
	return &build.State{Root: root, OutputDir: out, Package: "thunderfish", Report: build.NewReport()}
}

func TestStage_PassesRootConfigAndOutput(t *testing.T) {
	st := newState(t)
	var gotRoot, gotConfig, gotOut string

	stage := NewStage().WithRunner(runnerFunc(func(_ context.Context, root, configPath, outputDir string) error {
		gotRoot, gotConfig, gotOut = root, configPath, outputDir
		return nil
	}))

	require.NoError(t, stage.Run(context.Background(), st))
	assert.Equal(t, st.Root, gotRoot)
	assert.Equal(t, filepath.Join(st.Root, "mkdocs.yml"), gotConfig)
	assert.Equal(t, st.OutputDir, gotOut)
}

func TestStage_GeneratorFailureIsFailedNotFatal(t *testing.T) {
	st := newState(t)
	stage := NewStage().WithRunner(runnerFunc(func(context.Context, string, string, string) error {
		return assert.AnError
	}))

	err := stage.Run(context.Background(), st)
	require.Error(t, err)

	var se *build.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, build.StageErrorFailed, se.Kind)
	assert.True(t, berrors.IsCategory(se.Err, berrors.CategoryGenerator))
}

func TestStage_Identity(t *testing.T) {
	stage := NewStage()
	assert.Equal(t, build.StageGeneralDocs, stage.Name())
	assert.Equal(t, "mkdocs", stage.Tool())
}

func TestBinaryRunner_InvokesBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs not supported on windows")
	}
	st := newState(t)

	// Stub mkdocs that records its arguments and writes the entry page.
	stubDir := t.TempDir()
	script := `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -d) out="$2"; shift ;;
  esac
  shift
done
echo "<html></html>" > "$out/index.html"
`
	require.NoError(t, os.WriteFile(filepath.Join(stubDir, "mkdocs"), []byte(script), 0o755))
	t.Setenv("PATH", stubDir)

	err := BinaryRunner{}.Build(context.Background(), st.Root,
		filepath.Join(st.Root, "mkdocs.yml"), st.OutputDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(st.OutputDir, "index.html"))
}

func TestBinaryRunner_NonZeroExitIncludesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs not supported on windows")
	}
	stubDir := t.TempDir()
	script := "#!/bin/sh\necho 'Config file mkdocs.yml does not exist.' >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(stubDir, "mkdocs"), []byte(script), 0o755))
	t.Setenv("PATH", stubDir)

	err := BinaryRunner{}.Build(context.Background(), t.TempDir(), "mkdocs.yml", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
