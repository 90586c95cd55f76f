// Package workspace resolves the package root and manages the output
// directory lifecycle. Every build starts from a guaranteed-empty output
// directory so no generator ever sees artifacts from a prior run.
package workspace
