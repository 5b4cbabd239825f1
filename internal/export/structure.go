package export

import (
	"sort"
	"strings"

	"github.com/temirov/treepick/internal/types"
)

// structureNode is one level of the display tree built from eligible file
// paths. Directories sort before files, then lexicographically by name.
type structureNode struct {
	name        string
	isDirectory bool
	children    map[string]*structureNode
}

// RenderStructure builds an ASCII tree of the given slash-separated paths,
// rooted at ".". The rendering is sorted for display and independent of the
// processing order of the pipeline.
func RenderStructure(paths []string) string {
	rootNode := &structureNode{name: types.RootPath, isDirectory: true, children: map[string]*structureNode{}}
	for _, path := range paths {
		insertPath(rootNode, path)
	}

	var rendered strings.Builder
	rendered.WriteString(types.RootPath + "\n")
	renderChildren(&rendered, rootNode, "")
	return rendered.String()
}

func insertPath(rootNode *structureNode, path string) {
	segments := strings.Split(path, "/")
	currentNode := rootNode
	for segmentIndex, segment := range segments {
		isLeaf := segmentIndex == len(segments)-1
		childNode, exists := currentNode.children[segment]
		if !exists {
			childNode = &structureNode{
				name:        segment,
				isDirectory: !isLeaf,
				children:    map[string]*structureNode{},
			}
			currentNode.children[segment] = childNode
		}
		currentNode = childNode
	}
}

func renderChildren(rendered *strings.Builder, node *structureNode, prefix string) {
	childNodes := make([]*structureNode, 0, len(node.children))
	for _, childNode := range node.children {
		childNodes = append(childNodes, childNode)
	}
	sort.Slice(childNodes, func(firstIndex, secondIndex int) bool {
		firstChild, secondChild := childNodes[firstIndex], childNodes[secondIndex]
		if firstChild.isDirectory != secondChild.isDirectory {
			return firstChild.isDirectory
		}
		return firstChild.name < secondChild.name
	})

	for childIndex, childNode := range childNodes {
		isLastChild := childIndex == len(childNodes)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if isLastChild {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		rendered.WriteString(prefix + connector + childNode.name + "\n")
		renderChildren(rendered, childNode, childPrefix)
	}
}
