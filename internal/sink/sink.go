// Package sink delivers a finished export document to its destination. The
// clipboard path is a layered retry state machine: primary write, one
// truncated retry for oversized content, then an offered file fallback.
// The file path has no fallback.
package sink

// PrimaryWriter writes content to the transient, size-limited primary
// medium (the clipboard).
type PrimaryWriter interface {
	WritePrimary(content string) error
}

// FileWriter persists content to a destination path.
type FileWriter interface {
	WriteFile(destination string, content string) error
}

// Interactor asks the user for fallback decisions. Both prompts are
// expected to block until answered.
type Interactor interface {
	// PromptDestination asks for a fallback file destination. An empty
	// destination with accepted=false means the user declined.
	PromptDestination() (destination string, accepted bool)
	// ConfirmLargeContent asks whether to proceed with very large content.
	ConfirmLargeContent(sizeDescription string) bool
}

// OutcomeKind classifies how a dispatch run ended.
type OutcomeKind string

const (
	// OutcomeSuccess reports that the requested sink accepted the content.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeSuccessTruncated reports a clipboard write that succeeded
	// only after truncating the content to the clipboard threshold.
	OutcomeSuccessTruncated OutcomeKind = "success_truncated"
	// OutcomeSuccessFileFallback reports content saved to a file after the
	// clipboard failed.
	OutcomeSuccessFileFallback OutcomeKind = "success_file_fallback"
	// OutcomeCancelled reports a clean user cancellation. It is a
	// distinct outcome, never a failure.
	OutcomeCancelled OutcomeKind = "cancelled"
	// OutcomeFailure reports that every option failed or was declined.
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the reported result of one dispatch.
type Outcome struct {
	Kind        OutcomeKind
	Message     string
	Destination string
	Cause       error
}

// Succeeded reports whether the content reached any sink.
func (outcome Outcome) Succeeded() bool {
	switch outcome.Kind {
	case OutcomeSuccess, OutcomeSuccessTruncated, OutcomeSuccessFileFallback:
		return true
	default:
		return false
	}
}
