package errors

// Convenience functions for common error patterns

// Environment errors (workspace resolution, output directory creation)

func EnvironmentError(operation string, cause error) *BuildError {
	return Wrap(cause, CategoryEnvironment, SeverityFatal, "environment setup failed").
		WithContext("operation", operation)
}

func WorkspaceUnresolvable(cause error) *BuildError {
	return Wrap(cause, CategoryEnvironment, SeverityFatal, "cannot resolve package root")
}

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *BuildError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

// Generator errors

func GeneratorFailed(tool string, cause error) *BuildError {
	return Wrap(cause, CategoryGenerator, SeverityError, "documentation generator failed").
		WithContext("tool", tool)
}

func StructureMismatch(expected string, cause error) *BuildError {
	return Wrap(cause, CategoryStructure, SeverityError, "generator output missing expected subtree").
		WithContext("expected", expected)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
