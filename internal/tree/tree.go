// Package tree holds the authoritative hierarchical view of the workspace:
// a lazily loaded tree of nodes indexed by slash-separated relative path.
package tree

import (
	"sort"
	"strings"

	"github.com/temirov/treepick/internal/types"
)

// Node is one entry of the tree. Exactly one of Selected and Indeterminate
// may be true at any time. Directory children stay nil until loaded.
type Node struct {
	Path          string
	Name          string
	Kind          types.NodeKind
	Children      []*Node
	Selected      bool
	Indeterminate bool
	HasChildren   bool
	Loaded        bool
	SizeBytes     int64
}

// IsDirectory reports whether the node represents a directory.
func (node *Node) IsDirectory() bool {
	return node.Kind == types.NodeKindDirectory
}

// Tree is a path-indexed node hierarchy. The index replaces parent pointers:
// ancestor walks derive the parent path textually and look it up, which
// keeps the structure acyclic.
type Tree struct {
	root  *Node
	index map[string]*Node
}

// defaultExcludedNames lists well-known noise entries filtered transparently
// during child enumeration. Hosts never see them surface in the tree.
var defaultExcludedNames = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".DS_Store":    {},
	"Thumbs.db":    {},
	".idea":        {},
	".vscode":      {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"target":       {},
	".next":        {},
	".cache":       {},
	"coverage":     {},
	"vendor":       {},
}

// BuildRoot wraps the host-provided shallow listing of the workspace root.
// The root node is always a loaded, unselected directory at path ".".
func BuildRoot(entries []types.Entry) *Tree {
	rootNode := &Node{
		Path:   types.RootPath,
		Name:   types.RootPath,
		Kind:   types.NodeKindDirectory,
		Loaded: true,
	}
	builtTree := &Tree{
		root:  rootNode,
		index: map[string]*Node{types.RootPath: rootNode},
	}
	builtTree.installChildren(rootNode, entries)
	return builtTree
}

// Root returns the root node.
func (currentTree *Tree) Root() *Node {
	return currentTree.root
}

// FindByPath resolves a node by its relative path. A stale or unknown path
// yields nil rather than an error; callers handle the absence.
func (currentTree *Tree) FindByPath(path string) *Node {
	return currentTree.index[path]
}

// FindParent resolves the parent of the node at path. The root has no
// parent, so FindParent(".") is nil.
func (currentTree *Tree) FindParent(path string) *Node {
	if path == types.RootPath {
		return nil
	}
	return currentTree.index[ParentPath(path)]
}

// AttachChildren installs a freshly loaded child list under the directory at
// directoryPath and marks it loaded. A parent in a definite selection state
// (selected or cleared, not indeterminate) passes that state down to every
// new child, so a fully selected directory stays fully selected once its
// children materialize. Returns false when the path is unknown.
//
// Selection aggregates of the ancestors are not recomputed here; the
// selection engine owns that step.
func (currentTree *Tree) AttachChildren(directoryPath string, entries []types.Entry) bool {
	parentNode := currentTree.FindByPath(directoryPath)
	if parentNode == nil || !parentNode.IsDirectory() {
		return false
	}
	currentTree.installChildren(parentNode, entries)
	if !parentNode.Indeterminate {
		for _, childNode := range parentNode.Children {
			propagateSelection(childNode, parentNode.Selected)
		}
	}
	return true
}

// installChildren filters, sorts, and indexes the entries under parentNode.
func (currentTree *Tree) installChildren(parentNode *Node, entries []types.Entry) {
	childNodes := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		if _, excluded := defaultExcludedNames[entry.Name]; excluded {
			continue
		}
		childNode := &Node{
			Path:        ChildPath(parentNode.Path, entry.Name),
			Name:        entry.Name,
			Kind:        entry.Kind,
			HasChildren: entry.Kind == types.NodeKindDirectory,
			SizeBytes:   entry.SizeBytes,
		}
		childNodes = append(childNodes, childNode)
	}
	sortNodes(childNodes)
	parentNode.Children = childNodes
	parentNode.Loaded = true
	parentNode.HasChildren = len(childNodes) > 0
	for _, childNode := range childNodes {
		currentTree.index[childNode.Path] = childNode
	}
}

// propagateSelection forces a definite selection state onto a node and all
// of its loaded descendants.
func propagateSelection(node *Node, selected bool) {
	node.Selected = selected
	node.Indeterminate = false
	for _, childNode := range node.Children {
		propagateSelection(childNode, selected)
	}
}

// SelectedFiles collects the relative paths of all selected file nodes in
// tree order.
func (currentTree *Tree) SelectedFiles() []string {
	var selectedPaths []string
	currentTree.Walk(func(node *Node) {
		if node.Kind == types.NodeKindFile && node.Selected {
			selectedPaths = append(selectedPaths, node.Path)
		}
	})
	return selectedPaths
}

// Walk visits every node depth-first, the root included.
func (currentTree *Tree) Walk(visit func(node *Node)) {
	walkNode(currentTree.root, visit)
}

func walkNode(node *Node, visit func(node *Node)) {
	visit(node)
	for _, childNode := range node.Children {
		walkNode(childNode, visit)
	}
}

// ChildPath joins a parent path with a child name. Children of the root
// drop the "." prefix.
func ChildPath(parentPath string, childName string) string {
	if parentPath == types.RootPath {
		return childName
	}
	return parentPath + "/" + childName
}

// ParentPath derives the parent of a relative path by dropping the last
// segment. Top-level entries resolve to the root sentinel.
func ParentPath(path string) string {
	separatorIndex := strings.LastIndex(path, "/")
	if separatorIndex < 0 {
		return types.RootPath
	}
	return path[:separatorIndex]
}

// sortNodes orders directories before files, then lexicographically by name.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(firstIndex, secondIndex int) bool {
		firstNode, secondNode := nodes[firstIndex], nodes[secondIndex]
		if firstNode.IsDirectory() != secondNode.IsDirectory() {
			return firstNode.IsDirectory()
		}
		return firstNode.Name < secondNode.Name
	})
}
