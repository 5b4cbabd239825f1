package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/treepick/internal/config"
	"github.com/temirov/treepick/internal/export"
	"github.com/temirov/treepick/internal/host"
	"github.com/temirov/treepick/internal/types"
)

// buildWorkspace creates a small project layout and returns its host.
func buildWorkspace(testingHandle *testing.T) (string, *host.FilesystemHost) {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()
	for _, directory := range []string{"src", "src/lib", "docs"} {
		if mkdirError := os.MkdirAll(filepath.Join(rootDirectory, directory), 0o755); mkdirError != nil {
			testingHandle.Fatalf("mkdir %s: %v", directory, mkdirError)
		}
	}
	filesByPath := map[string]string{
		"README.md":       "# readme\n",
		"src/main.go":     "package main\n",
		"src/lib/util.go": "package lib\n",
		"docs/guide.md":   "guide\n",
	}
	for relativePath, content := range filesByPath {
		if writeError := os.WriteFile(filepath.Join(rootDirectory, filepath.FromSlash(relativePath)), []byte(content), 0o600); writeError != nil {
			testingHandle.Fatalf("write %s: %v", relativePath, writeError)
		}
	}
	return rootDirectory, host.NewFilesystemHost(rootDirectory)
}

func TestSelectRequestedPathsExpandsDirectories(testingHandle *testing.T) {
	_, fileHost := buildWorkspace(testingHandle)

	engine, engineError := buildSelectionEngine(fileHost)
	if engineError != nil {
		testingHandle.Fatalf("build engine: %v", engineError)
	}
	if selectError := selectRequestedPaths(engine, fileHost, []string{"src", "README.md"}); selectError != nil {
		testingHandle.Fatalf("select paths: %v", selectError)
	}

	selectedPaths := engine.SelectedFiles()
	expectedPaths := map[string]struct{}{
		"src/main.go":     {},
		"src/lib/util.go": {},
		"README.md":       {},
	}
	if len(selectedPaths) != len(expectedPaths) {
		testingHandle.Fatalf("selected %v, want the src subtree plus README.md", selectedPaths)
	}
	for _, path := range selectedPaths {
		if _, expected := expectedPaths[path]; !expected {
			testingHandle.Fatalf("unexpected selection %s", path)
		}
	}
}

func TestSelectRequestedPathsRejectsEscapingPaths(testingHandle *testing.T) {
	_, fileHost := buildWorkspace(testingHandle)
	engine, _ := buildSelectionEngine(fileHost)

	for _, escapingPath := range []string{"..", "../outside", "/etc/passwd"} {
		if selectError := selectRequestedPaths(engine, fileHost, []string{escapingPath}); selectError == nil {
			testingHandle.Fatalf("path %q must be rejected", escapingPath)
		}
	}
}

func TestSelectRequestedPathsReportsUnknownPath(testingHandle *testing.T) {
	_, fileHost := buildWorkspace(testingHandle)
	engine, _ := buildSelectionEngine(fileHost)

	selectError := selectRequestedPaths(engine, fileHost, []string{"ghost/none.go"})
	var pathError *types.PathError
	if !errors.As(selectError, &pathError) {
		testingHandle.Fatalf("expected PathError, got %v", selectError)
	}
}

func TestNormalizeRequestedPath(testingHandle *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: ".", expected: types.RootPath},
		{input: "./src", expected: "src"},
		{input: "src/lib/", expected: "src/lib"},
	}
	for _, testCase := range testCases {
		normalized, normalizeError := normalizeRequestedPath(testCase.input)
		if normalizeError != nil {
			testingHandle.Fatalf("normalize %q: %v", testCase.input, normalizeError)
		}
		if normalized != testCase.expected {
			testingHandle.Fatalf("normalize %q = %q, want %q", testCase.input, normalized, testCase.expected)
		}
	}
}

func TestResolveExportConfigurationLayersDefaults(testingHandle *testing.T) {
	structureOff := false
	configuredMax := 4096
	defaults := config.ExportConfiguration{
		Format:       "plaintext",
		Structure:    &structureOff,
		MaxFileBytes: &configuredMax,
		Exclude:      []string{"*.log"},
	}

	command := newExportCommand()
	flags := &exportFlags{excludePatterns: []string{"*.tmp"}}
	resolved := resolveExportConfiguration(command, flags, defaults)

	if resolved.Format != export.FormatPlainText {
		testingHandle.Fatalf("format = %q, want configured plaintext", resolved.Format)
	}
	if resolved.Sink != export.SinkClipboard {
		testingHandle.Fatalf("sink = %q, want built-in clipboard default", resolved.Sink)
	}
	if resolved.IncludeStructure {
		testingHandle.Fatalf("configured structure=false must win over the flag default")
	}
	if resolved.MaxFileBytes != configuredMax {
		testingHandle.Fatalf("maxFileBytes = %d, want %d", resolved.MaxFileBytes, configuredMax)
	}
	if resolved.TruncateThresholdBytes != configuredMax {
		testingHandle.Fatalf("truncate threshold must default to maxFileBytes")
	}
	expectedExcludes := []string{"*.log", "*.tmp"}
	if !reflect.DeepEqual(resolved.ExcludePatterns, expectedExcludes) {
		testingHandle.Fatalf("exclude patterns = %v, want %v", resolved.ExcludePatterns, expectedExcludes)
	}
	if validationError := resolved.Validate(); validationError != nil {
		testingHandle.Fatalf("resolved configuration must validate: %v", validationError)
	}
}

func TestResolveExportConfigurationFlagBeatsConfig(testingHandle *testing.T) {
	defaults := config.ExportConfiguration{Format: "plaintext", Sink: "file"}
	command := newExportCommand()
	flags := &exportFlags{format: "markdown", sinkKind: "clipboard", maxFileBytes: 10}

	resolved := resolveExportConfiguration(command, flags, defaults)
	if resolved.Format != export.FormatMarkdown || resolved.Sink != export.SinkClipboard {
		testingHandle.Fatalf("flags must beat configuration, got %+v", resolved)
	}
	if resolved.MaxFileBytes != 10 {
		testingHandle.Fatalf("maxFileBytes flag must win, got %d", resolved.MaxFileBytes)
	}
}

func TestTreeCommandPrintsStructure(testingHandle *testing.T) {
	rootDirectory, _ := buildWorkspace(testingHandle)
	previousDirectory, _ := os.Getwd()
	if chdirError := os.Chdir(rootDirectory); chdirError != nil {
		testingHandle.Fatalf("chdir: %v", chdirError)
	}
	defer os.Chdir(previousDirectory)

	command := NewRootCommand()
	var output bytes.Buffer
	command.SetOut(&output)
	command.SetErr(&output)
	command.SetArgs([]string{"tree", "src"})
	if executeError := command.Execute(); executeError != nil {
		testingHandle.Fatalf("tree command failed: %v", executeError)
	}

	rendered := output.String()
	for _, fragment := range []string{"main.go", "util.go", "lib"} {
		if !strings.Contains(rendered, fragment) {
			testingHandle.Fatalf("tree output missing %q:\n%s", fragment, rendered)
		}
	}
}
