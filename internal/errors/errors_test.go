package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildError_ErrorString(t *testing.T) {
	e := New(CategoryGenerator, SeverityError, "documentation generator failed")
	assert.Equal(t, "generator (error): documentation generator failed", e.Error())

	wrapped := Wrap(fmt.Errorf("exit status 1"), CategoryGenerator, SeverityError, "documentation generator failed")
	assert.Contains(t, wrapped.Error(), "exit status 1")
}

func TestBuildError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	e := GeneratorFailed("mkdocs", cause)
	assert.ErrorIs(t, e, cause)
}

func TestBuildError_Context(t *testing.T) {
	e := StructureMismatch("/site/api-tmp/thunderfish", fmt.Errorf("no such file"))
	assert.Equal(t, "/site/api-tmp/thunderfish", e.Context["expected"])
	assert.Equal(t, CategoryStructure, e.Category)
}

func TestCategoryHelpers(t *testing.T) {
	e := WorkspaceUnresolvable(fmt.Errorf("permission denied"))
	assert.True(t, IsCategory(e, CategoryEnvironment))
	assert.False(t, IsCategory(e, CategoryGenerator))
	assert.Equal(t, CategoryEnvironment, GetCategory(e))
	assert.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, ExitSuccess, a.ExitCodeFor(nil))
	assert.Equal(t, ExitEnvironment, a.ExitCodeFor(EnvironmentError("create output directory", fmt.Errorf("read-only fs"))))
	assert.Equal(t, ExitEnvironment, a.ExitCodeFor(ConfigNotFound("mkdocs.yml")))
	assert.Equal(t, ExitBuildFailed, a.ExitCodeFor(GeneratorFailed("mkdocs", fmt.Errorf("exit status 1"))))
	assert.Equal(t, ExitBuildFailed, a.ExitCodeFor(StructureMismatch("api-tmp/thunderfish", fmt.Errorf("missing"))))
	assert.Equal(t, ExitBuildFailed, a.ExitCodeFor(fmt.Errorf("plain error")))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	terse := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)
	e := GeneratorFailed("pdoc", fmt.Errorf("exit status 2"))

	assert.Equal(t, "ERROR: documentation generator failed", terse.FormatError(e))
	assert.Contains(t, verbose.FormatError(e), "exit status 2")
	assert.Empty(t, terse.FormatError(nil))
}
