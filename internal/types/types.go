// Package types defines cross-package constants and shared data structures
// for the treepick tool.
package types

// NodeKind discriminates files from directories in the tree model.
type NodeKind string

const (
	// NodeKindFile marks a regular file node.
	NodeKindFile NodeKind = "file"
	// NodeKindDirectory marks a directory node.
	NodeKindDirectory NodeKind = "directory"
)

// RootPath is the sentinel path of the tree root.
const RootPath = "."

// Entry is one child reported by the host when listing a directory.
type Entry struct {
	Name      string
	Kind      NodeKind
	SizeBytes int64
}

// PathInfo is the result of a host stat call.
type PathInfo struct {
	Kind      NodeKind
	SizeBytes int64
}

// SelectionState is the publicly visible tri-state of one node, reported to
// the presentation layer after a selection mutation.
type SelectionState struct {
	Path          string
	Selected      bool
	Indeterminate bool
}
