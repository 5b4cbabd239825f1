package export

import (
	"fmt"

	"github.com/temirov/treepick/internal/pattern"
	"github.com/temirov/treepick/internal/types"
)

// Format selects the textual layout of the exported document.
type Format string

const (
	// FormatMarkdown frames file bodies in fenced code blocks.
	FormatMarkdown Format = "markdown"
	// FormatPlainText frames file bodies with banner rules.
	FormatPlainText Format = "plaintext"
)

// SinkKind selects the destination of the exported document.
type SinkKind string

const (
	// SinkFile persists the document to a file.
	SinkFile SinkKind = "file"
	// SinkClipboard delivers the document to the clipboard.
	SinkClipboard SinkKind = "clipboard"
)

// Configuration describes one export run. All numeric fields must be
// strictly positive and enum fields must carry known values; Validate
// rejects anything else before the pipeline performs I/O.
type Configuration struct {
	Format                 Format
	Sink                   SinkKind
	IncludeStructure       bool
	MaxFileBytes           int
	TruncateThresholdBytes int
	ExcludePatterns        []string
	IncludePatterns        []string
}

// Validate checks the configuration and reports the first violation as a
// ConfigurationError. The core never substitutes defaults; that is a policy
// decision for calling layers.
func (configuration Configuration) Validate() error {
	switch configuration.Format {
	case FormatMarkdown, FormatPlainText:
	default:
		return &types.ConfigurationError{Field: "format", Reason: fmt.Sprintf("unknown value %q", configuration.Format)}
	}
	switch configuration.Sink {
	case SinkFile, SinkClipboard:
	default:
		return &types.ConfigurationError{Field: "sink", Reason: fmt.Sprintf("unknown value %q", configuration.Sink)}
	}
	if configuration.MaxFileBytes <= 0 {
		return &types.ConfigurationError{Field: "maxFileBytes", Reason: "must be strictly positive"}
	}
	if configuration.TruncateThresholdBytes <= 0 {
		return &types.ConfigurationError{Field: "truncateThresholdBytes", Reason: "must be strictly positive"}
	}
	if patternError := pattern.Validate(configuration.ExcludePatterns); patternError != nil {
		return &types.ConfigurationError{Field: "excludePatterns", Reason: patternError.Error()}
	}
	if patternError := pattern.Validate(configuration.IncludePatterns); patternError != nil {
		return &types.ConfigurationError{Field: "includePatterns", Reason: patternError.Error()}
	}
	return nil
}
