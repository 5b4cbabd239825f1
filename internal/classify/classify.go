// Package classify decides whether a path is eligible for textual export and
// annotates known extensions with a display language hint.
package classify

import (
	"path/filepath"
	"strings"
)

// binaryExtensions lists extensions that are never exported as text:
// executables, archives, images, audio, video, and office documents.
var binaryExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".o": {}, ".a": {},
	".class": {}, ".pyc": {}, ".wasm": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".7z": {}, ".rar": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {}, ".webp": {}, ".tiff": {},
	".mp3": {}, ".wav": {}, ".flac": {}, ".ogg": {}, ".m4a": {},
	".mp4": {}, ".avi": {}, ".mkv": {}, ".mov": {}, ".webm": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {}, ".eot": {},
}

// languageHints maps extensions to short format tags used when framing file
// bodies for display. The hint is cosmetic and never affects inclusion.
var languageHints = map[string]string{
	".go":    "go",
	".ts":    "typescript",
	".tsx":   "tsx",
	".js":    "javascript",
	".jsx":   "jsx",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "bash",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".xml":   "xml",
	".md":    "markdown",
	".txt":   "text",
	".php":   "php",
	".lua":   "lua",
	".pl":    "perl",
	".r":     "r",
	".scala": "scala",
	".dart":  "dart",
	".ex":    "elixir",
	".exs":   "elixir",
	".zig":   "zig",
	".proto": "protobuf",
}

// IsBinaryByExtension reports whether the path carries a known binary
// extension. The comparison is case-insensitive on the extension only.
func IsBinaryByExtension(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	_, found := binaryExtensions[extension]
	return found
}

// LanguageHint returns the short format tag for the path's extension, or an
// empty string when the extension is unknown.
func LanguageHint(path string) string {
	extension := strings.ToLower(filepath.Ext(path))
	return languageHints[extension]
}
