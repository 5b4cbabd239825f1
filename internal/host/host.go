// Package host defines the collaborator contract that supplies raw
// directory listings and file bytes, together with a local filesystem
// implementation of it.
package host

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/treepick/internal/types"
)

// Host supplies directory structure and file contents. Paths are
// slash-separated and relative to the host's root; "." names the root.
type Host interface {
	// StatPath resolves the kind and size of a path. A missing path fails
	// with types.ErrNotFound.
	StatPath(path string) (types.PathInfo, error)
	// ListChildren lists the direct children of a directory. Ordering is
	// not guaranteed; the tree model resorts.
	ListChildren(directoryPath string) ([]types.Entry, error)
	// ReadFileBytes reads the full content of a file. Permission and I/O
	// problems fail with a types.ReadError.
	ReadFileBytes(path string) ([]byte, error)
}

// FilesystemHost implements Host over a directory of the local filesystem.
type FilesystemHost struct {
	rootDirectory string
}

// NewFilesystemHost constructs a host rooted at rootDirectory.
func NewFilesystemHost(rootDirectory string) *FilesystemHost {
	return &FilesystemHost{rootDirectory: rootDirectory}
}

// StatPath implements Host.
func (filesystemHost *FilesystemHost) StatPath(path string) (types.PathInfo, error) {
	fileInformation, statError := os.Stat(filesystemHost.absolute(path))
	if statError != nil {
		if os.IsNotExist(statError) {
			return types.PathInfo{}, fmt.Errorf("stat %s: %w", path, types.ErrNotFound)
		}
		return types.PathInfo{}, fmt.Errorf("stat %s: %w", path, statError)
	}
	pathInfo := types.PathInfo{Kind: types.NodeKindFile, SizeBytes: fileInformation.Size()}
	if fileInformation.IsDir() {
		pathInfo.Kind = types.NodeKindDirectory
		pathInfo.SizeBytes = 0
	}
	return pathInfo, nil
}

// ListChildren implements Host.
func (filesystemHost *FilesystemHost) ListChildren(directoryPath string) ([]types.Entry, error) {
	directoryEntries, readError := os.ReadDir(filesystemHost.absolute(directoryPath))
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, fmt.Errorf("list %s: %w", directoryPath, types.ErrNotFound)
		}
		return nil, fmt.Errorf("list %s: %w", directoryPath, readError)
	}
	entries := make([]types.Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entry := types.Entry{Name: directoryEntry.Name(), Kind: types.NodeKindFile}
		if directoryEntry.IsDir() {
			entry.Kind = types.NodeKindDirectory
		} else if fileInformation, infoError := directoryEntry.Info(); infoError == nil {
			entry.SizeBytes = fileInformation.Size()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadFileBytes implements Host.
func (filesystemHost *FilesystemHost) ReadFileBytes(path string) ([]byte, error) {
	content, readError := os.ReadFile(filesystemHost.absolute(path))
	if readError != nil {
		return nil, &types.ReadError{Path: path, Err: readError}
	}
	return content, nil
}

// absolute maps a tree-relative path onto the host root.
func (filesystemHost *FilesystemHost) absolute(path string) string {
	if path == types.RootPath {
		return filesystemHost.rootDirectory
	}
	return filepath.Join(filesystemHost.rootDirectory, filepath.FromSlash(path))
}

var _ Host = (*FilesystemHost)(nil)
