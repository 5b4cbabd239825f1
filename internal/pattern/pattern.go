// Package pattern matches slash-separated relative paths against glob
// patterns. `**` crosses path separators, `*` stays within one segment,
// and `?` matches exactly one non-separator character. Matching is anchored
// to the whole path and case-sensitive.
package pattern

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Matches reports whether path matches pattern. A malformed pattern never
// matches anything.
func Matches(path string, patternValue string) bool {
	matched, matchError := doublestar.Match(patternValue, path)
	if matchError != nil {
		return false
	}
	return matched
}

// MatchesAny reports whether path matches at least one of the patterns. An
// empty pattern list matches nothing.
func MatchesAny(path string, patterns []string) bool {
	for _, patternValue := range patterns {
		if Matches(path, patternValue) {
			return true
		}
	}
	return false
}

// Validate reports the first malformed pattern in the list, or nil when all
// patterns compile.
func Validate(patterns []string) error {
	for _, patternValue := range patterns {
		if !doublestar.ValidatePattern(patternValue) {
			return doublestar.ErrBadPattern
		}
	}
	return nil
}
