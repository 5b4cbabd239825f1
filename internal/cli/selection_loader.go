package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/treepick/internal/host"
	"github.com/temirov/treepick/internal/selection"
	"github.com/temirov/treepick/internal/tree"
	"github.com/temirov/treepick/internal/types"
)

// buildSelectionEngine constructs a tree from the host's shallow root
// listing and wraps it in a selection engine.
func buildSelectionEngine(fileHost host.Host) (*selection.Engine, error) {
	rootEntries, listError := fileHost.ListChildren(types.RootPath)
	if listError != nil {
		return nil, fmt.Errorf("list workspace root: %w", listError)
	}
	return selection.NewEngine(tree.BuildRoot(rootEntries)), nil
}

// selectRequestedPaths marks every requested path selected, loading any
// directories on the way. Directory selections are expanded into concrete
// file paths by loading the full subtree before toggling, so the projection
// returned by the engine contains only files. Unknown paths are reported.
func selectRequestedPaths(engine *selection.Engine, fileHost host.Host, requestedPaths []string) error {
	for _, requestedPath := range requestedPaths {
		normalizedPath, normalizeError := normalizeRequestedPath(requestedPath)
		if normalizeError != nil {
			return normalizeError
		}
		if loadError := loadAncestors(engine, fileHost, normalizedPath); loadError != nil {
			return loadError
		}
		targetNode := engine.Tree().FindByPath(normalizedPath)
		if targetNode == nil {
			return &types.PathError{Path: requestedPath}
		}
		if targetNode.IsDirectory() {
			if loadError := loadSubtree(engine, fileHost, normalizedPath); loadError != nil {
				return loadError
			}
		}
		engine.SetSelected(normalizedPath, true)
	}
	return nil
}

// normalizeRequestedPath converts a user-supplied path into the tree's
// slash-separated relative form.
func normalizeRequestedPath(requestedPath string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean(requestedPath))
	if cleaned == "." || cleaned == "" {
		return types.RootPath, nil
	}
	if strings.HasPrefix(cleaned, "../") || cleaned == ".." || filepath.IsAbs(requestedPath) {
		return "", fmt.Errorf("path %q is outside the workspace", requestedPath)
	}
	return strings.TrimPrefix(cleaned, "./"), nil
}

// loadAncestors loads every directory on the way to path so lookup can
// resolve it.
func loadAncestors(engine *selection.Engine, fileHost host.Host, path string) error {
	if path == types.RootPath {
		return nil
	}
	segments := strings.Split(path, "/")
	currentPath := types.RootPath
	for _, segment := range segments[:len(segments)-1] {
		currentPath = tree.ChildPath(currentPath, segment)
		directoryNode := engine.Tree().FindByPath(currentPath)
		if directoryNode == nil {
			return &types.PathError{Path: path}
		}
		if directoryNode.IsDirectory() && !directoryNode.Loaded {
			if loadError := attachFromHost(engine, fileHost, currentPath); loadError != nil {
				return loadError
			}
		}
	}
	return nil
}

// loadSubtree loads every directory below directoryPath, depth first.
func loadSubtree(engine *selection.Engine, fileHost host.Host, directoryPath string) error {
	directoryNode := engine.Tree().FindByPath(directoryPath)
	if directoryNode == nil {
		return &types.PathError{Path: directoryPath}
	}
	if !directoryNode.Loaded {
		if loadError := attachFromHost(engine, fileHost, directoryPath); loadError != nil {
			return loadError
		}
	}
	for _, childNode := range directoryNode.Children {
		if childNode.IsDirectory() {
			if loadError := loadSubtree(engine, fileHost, childNode.Path); loadError != nil {
				return loadError
			}
		}
	}
	return nil
}

func attachFromHost(engine *selection.Engine, fileHost host.Host, directoryPath string) error {
	entries, listError := fileHost.ListChildren(directoryPath)
	if listError != nil {
		return fmt.Errorf("list %s: %w", directoryPath, listError)
	}
	engine.AttachChildren(directoryPath, entries)
	return nil
}
