// Package selection keeps the tri-state invariants of the tree consistent
// under user toggles and asynchronous child loads.
//
// The rule per directory, evaluated over currently loaded children only:
// all selected means selected, none selected and none indeterminate means
// cleared, anything else means indeterminate. A directory with zero loaded
// children counts as cleared.
package selection

import (
	"sync"

	"github.com/temirov/treepick/internal/tree"
	"github.com/temirov/treepick/internal/types"
)

// Engine mutates a tree's selection flags. Mutations are atomic from the
// caller's perspective: a toggle and its ancestor recomputation run to
// completion before another mutation is accepted.
type Engine struct {
	mutex       sync.Mutex
	currentTree *tree.Tree
}

// NewEngine constructs an engine over the given tree.
func NewEngine(currentTree *tree.Tree) *Engine {
	return &Engine{currentTree: currentTree}
}

// Tree returns the engine's underlying tree.
func (engine *Engine) Tree() *tree.Tree {
	return engine.currentTree
}

// SetSelected sets the selection of the node at path and propagates it: a
// directory forces the same state onto every loaded descendant, then the
// ancestors are recomputed up to the root. A stale path is a no-op and
// reports no changes.
func (engine *Engine) SetSelected(path string, selected bool) []types.SelectionState {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	targetNode := engine.currentTree.FindByPath(path)
	if targetNode == nil {
		return nil
	}

	changeRecorder := newChangeRecorder()
	applySelection(targetNode, selected, changeRecorder)
	engine.recomputeAncestors(path, changeRecorder)
	return changeRecorder.changes
}

// AttachChildren installs a loaded child list through the tree, then brings
// the selection aggregates from the attach point up to the root back in
// line. Reports every node whose visible state changed.
func (engine *Engine) AttachChildren(directoryPath string, entries []types.Entry) []types.SelectionState {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	if !engine.currentTree.AttachChildren(directoryPath, entries) {
		return nil
	}

	changeRecorder := newChangeRecorder()
	if directoryNode := engine.currentTree.FindByPath(directoryPath); directoryNode != nil {
		recomputeNode(directoryNode, changeRecorder)
	}
	engine.recomputeAncestors(directoryPath, changeRecorder)
	return changeRecorder.changes
}

// SelectedFiles projects the current selection into the set of selected
// file paths, in tree order.
func (engine *Engine) SelectedFiles() []string {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.currentTree.SelectedFiles()
}

// recomputeAncestors walks from the parent of path to the root, recomputing
// each directory's tri-state from its direct loaded children. The walk
// touches each ancestor exactly once; the tree is acyclic by construction.
func (engine *Engine) recomputeAncestors(path string, changeRecorder *changeRecorder) {
	currentPath := path
	for currentPath != types.RootPath {
		currentPath = tree.ParentPath(currentPath)
		ancestorNode := engine.currentTree.FindByPath(currentPath)
		if ancestorNode == nil {
			return
		}
		recomputeNode(ancestorNode, changeRecorder)
	}
}

// applySelection sets a definite selection state on a node and every loaded
// descendant, recording each node whose state changed.
func applySelection(node *tree.Node, selected bool, changeRecorder *changeRecorder) {
	changeRecorder.record(node, selected, false)
	node.Selected = selected
	node.Indeterminate = false
	for _, childNode := range node.Children {
		applySelection(childNode, selected, changeRecorder)
	}
}

// recomputeNode re-derives one directory's tri-state from its loaded
// children. Files keep their explicit state.
func recomputeNode(node *tree.Node, changeRecorder *changeRecorder) {
	if !node.IsDirectory() {
		return
	}
	selected, indeterminate := aggregateChildren(node)
	changeRecorder.record(node, selected, indeterminate)
	node.Selected = selected
	node.Indeterminate = indeterminate
}

// aggregateChildren evaluates the tri-state rule over loaded children. Zero
// loaded children counts as cleared, never indeterminate.
func aggregateChildren(node *tree.Node) (selected bool, indeterminate bool) {
	if !node.Loaded || len(node.Children) == 0 {
		return false, false
	}
	allSelected := true
	anyMarked := false
	for _, childNode := range node.Children {
		if childNode.Selected || childNode.Indeterminate {
			anyMarked = true
		}
		if !childNode.Selected {
			allSelected = false
		}
	}
	switch {
	case allSelected:
		return true, false
	case anyMarked:
		return false, true
	default:
		return false, false
	}
}

// changeRecorder collects the visible state transitions of one mutation.
type changeRecorder struct {
	changes []types.SelectionState
}

func newChangeRecorder() *changeRecorder {
	return &changeRecorder{}
}

// record notes the upcoming state of node when it differs from the current
// one. Must be called before the node is mutated.
func (recorder *changeRecorder) record(node *tree.Node, selected bool, indeterminate bool) {
	if node.Selected == selected && node.Indeterminate == indeterminate {
		return
	}
	recorder.changes = append(recorder.changes, types.SelectionState{
		Path:          node.Path,
		Selected:      selected,
		Indeterminate: indeterminate,
	})
}
