package build

// State carries the resolved paths and package identity shared across stages.
// Stages write into disjoint subtrees of OutputDir and share no other mutable
// state.
type State struct {
	Root      string // package root; all relative operations resolve against this
	OutputDir string // absolute output directory (Root/site)
	Package   string // identity of the documented package
	DocsDir   string // absolute markdown source directory
	Report    *Report
}
