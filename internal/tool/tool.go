// Package tool reports whether the external documentation generators are
// resolvable on the execution search path. Availability is derived fresh on
// every check, never cached.
package tool

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

// Canonical tool names.
const (
	MkDocs = "mkdocs"
	Pdoc   = "pdoc"
)

// Status describes the availability of one external tool.
type Status struct {
	Name      string
	Available bool
	Path      string // resolved executable path, empty when absent
	Version   string // best-effort, empty when detection fails
}

// Check reports whether the named executable is resolvable on PATH and, when
// present, probes its version. The check itself has no side effects.
func Check(ctx context.Context, name string) Status {
	path, err := exec.LookPath(name)
	if err != nil {
		return Status{Name: name}
	}
	return Status{
		Name:      name,
		Available: true,
		Path:      path,
		Version:   detectVersion(ctx, path),
	}
}

// InstallHint returns the remediation command for a missing tool.
func InstallHint(name string) string {
	switch name {
	case MkDocs:
		return "pip install mkdocs"
	case Pdoc:
		return "pip install pdoc3"
	default:
		return "pip install " + name
	}
}

// detectVersion runs `<tool> --version` and extracts a semantic version.
// Best-effort; returns empty string on any failure.
func detectVersion(ctx context.Context, path string) string {
	// #nosec G204 -- path is from exec.LookPath, not user-controlled
	cmd := exec.CommandContext(ctx, path, "--version")
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return parseVersion(string(output))
}

var versionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// parseVersion extracts the numeric version from tool version output.
// Expected format examples:
//
//	mkdocs, version 1.6.1 from /usr/lib/python3/dist-packages/mkdocs
//	pdoc3 0.11.1
func parseVersion(output string) string {
	matches := versionRe.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return strings.TrimSpace(output)
}
