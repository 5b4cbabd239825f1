package tree_test

import (
	"reflect"
	"testing"

	"github.com/temirov/treepick/internal/tree"
	"github.com/temirov/treepick/internal/types"
)

func fileEntry(name string) types.Entry {
	return types.Entry{Name: name, Kind: types.NodeKindFile}
}

func directoryEntry(name string) types.Entry {
	return types.Entry{Name: name, Kind: types.NodeKindDirectory}
}

func TestBuildRootInitializesRootNode(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{fileEntry("README.md"), directoryEntry("src")})

	rootNode := builtTree.Root()
	if rootNode.Path != types.RootPath {
		testingHandle.Fatalf("root path = %q, want %q", rootNode.Path, types.RootPath)
	}
	if !rootNode.Loaded {
		testingHandle.Fatalf("root must be loaded")
	}
	if rootNode.Selected || rootNode.Indeterminate {
		testingHandle.Fatalf("root must start unselected")
	}
	if len(rootNode.Children) != 2 {
		testingHandle.Fatalf("expected 2 children, got %d", len(rootNode.Children))
	}
}

func TestChildrenSortedDirectoriesFirst(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{
		fileEntry("zz.txt"),
		directoryEntry("beta"),
		fileEntry("aa.txt"),
		directoryEntry("alpha"),
	})

	var childNames []string
	for _, childNode := range builtTree.Root().Children {
		childNames = append(childNames, childNode.Name)
	}
	expectedOrder := []string{"alpha", "beta", "aa.txt", "zz.txt"}
	if !reflect.DeepEqual(childNames, expectedOrder) {
		testingHandle.Fatalf("child order = %v, want %v", childNames, expectedOrder)
	}
}

func TestDefaultExclusionFiltersNoiseEntries(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{
		directoryEntry(".git"),
		directoryEntry("node_modules"),
		fileEntry(".DS_Store"),
		fileEntry("main.go"),
	})

	if len(builtTree.Root().Children) != 1 {
		testingHandle.Fatalf("expected only main.go to survive, got %d children", len(builtTree.Root().Children))
	}
	if builtTree.FindByPath(".git") != nil {
		testingHandle.Fatalf(".git must not be indexed")
	}
}

func TestFindByPathReturnsNilForUnknownPath(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{fileEntry("a.txt")})
	if builtTree.FindByPath("missing/path.txt") != nil {
		testingHandle.Fatalf("unknown path must resolve to nil")
	}
}

func TestFindParent(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{directoryEntry("src")})
	builtTree.AttachChildren("src", []types.Entry{fileEntry("main.go")})

	parentNode := builtTree.FindParent("src/main.go")
	if parentNode == nil || parentNode.Path != "src" {
		testingHandle.Fatalf("parent of src/main.go = %v, want src", parentNode)
	}
	topLevelParent := builtTree.FindParent("src")
	if topLevelParent == nil || topLevelParent.Path != types.RootPath {
		testingHandle.Fatalf("parent of src must be the root")
	}
	if builtTree.FindParent(types.RootPath) != nil {
		testingHandle.Fatalf("root has no parent")
	}
}

func TestAttachChildrenMarksLoadedAndIndexes(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{directoryEntry("src")})

	sourceNode := builtTree.FindByPath("src")
	if sourceNode.Loaded {
		testingHandle.Fatalf("directory must start unloaded")
	}
	if attached := builtTree.AttachChildren("src", []types.Entry{fileEntry("a.go"), fileEntry("b.go")}); !attached {
		testingHandle.Fatalf("attach on a known directory must succeed")
	}
	if !sourceNode.Loaded {
		testingHandle.Fatalf("directory must be loaded after attach")
	}
	if builtTree.FindByPath("src/a.go") == nil || builtTree.FindByPath("src/b.go") == nil {
		testingHandle.Fatalf("attached children must be indexed by path")
	}
}

func TestAttachChildrenOnUnknownPathIsRejected(testingHandle *testing.T) {
	builtTree := tree.BuildRoot(nil)
	if builtTree.AttachChildren("ghost", []types.Entry{fileEntry("a.go")}) {
		testingHandle.Fatalf("attach on an unknown path must be rejected")
	}
}

func TestAttachChildrenInheritsSelectedState(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{directoryEntry("src")})
	sourceNode := builtTree.FindByPath("src")
	sourceNode.Selected = true

	builtTree.AttachChildren("src", []types.Entry{fileEntry("a.go"), directoryEntry("lib")})

	for _, childNode := range sourceNode.Children {
		if !childNode.Selected || childNode.Indeterminate {
			testingHandle.Fatalf("child %s must inherit the selected state", childNode.Path)
		}
	}
}

func TestAttachChildrenDoesNotOverrideIndeterminateParent(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{directoryEntry("src")})
	sourceNode := builtTree.FindByPath("src")
	sourceNode.Indeterminate = true

	builtTree.AttachChildren("src", []types.Entry{fileEntry("a.go")})

	if builtTree.FindByPath("src/a.go").Selected {
		testingHandle.Fatalf("children of an indeterminate parent must stay unselected")
	}
}

func TestSelectedFilesCollectsOnlySelectedLeaves(testingHandle *testing.T) {
	builtTree := tree.BuildRoot([]types.Entry{directoryEntry("src"), fileEntry("README.md")})
	builtTree.AttachChildren("src", []types.Entry{fileEntry("a.go"), fileEntry("b.go")})

	builtTree.FindByPath("src/a.go").Selected = true
	builtTree.FindByPath("README.md").Selected = true

	selectedPaths := builtTree.SelectedFiles()
	expectedPaths := []string{"src/a.go", "README.md"}
	if !reflect.DeepEqual(selectedPaths, expectedPaths) {
		testingHandle.Fatalf("selected files = %v, want %v", selectedPaths, expectedPaths)
	}
}

func TestParentPath(testingHandle *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{path: "src/deep/file.go", expected: "src/deep"},
		{path: "src", expected: types.RootPath},
		{path: "file.txt", expected: types.RootPath},
	}
	for _, testCase := range testCases {
		if result := tree.ParentPath(testCase.path); result != testCase.expected {
			testingHandle.Fatalf("ParentPath(%q) = %q, want %q", testCase.path, result, testCase.expected)
		}
	}
}
