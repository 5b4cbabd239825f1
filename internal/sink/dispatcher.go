package sink

import (
	"fmt"

	"github.com/temirov/treepick/internal/types"
	"github.com/temirov/treepick/internal/utils"
)

const (
	// clipboardThresholdBytes is the size beyond which a failed clipboard
	// write is retried once with truncated content.
	clipboardThresholdBytes = 1 * 1024 * 1024
	// veryLargeThresholdBytes is the size beyond which the user must
	// confirm before any write is attempted.
	veryLargeThresholdBytes = 8 * 1024 * 1024

	// clipboardTruncationNotice terminates content truncated for the
	// clipboard retry.
	clipboardTruncationNotice = "\n\n[content truncated to fit the clipboard]"
)

// Dispatcher orchestrates sink delivery. It performs no content
// manipulation beyond the single clipboard truncation step.
type Dispatcher struct {
	primaryWriter PrimaryWriter
	fileWriter    FileWriter
	interactor    Interactor
}

// NewDispatcher constructs a dispatcher over the given capabilities.
func NewDispatcher(primaryWriter PrimaryWriter, fileWriter FileWriter, interactor Interactor) *Dispatcher {
	return &Dispatcher{
		primaryWriter: primaryWriter,
		fileWriter:    fileWriter,
		interactor:    interactor,
	}
}

// DispatchFile writes content to destination. There is no fallback and no
// size gate: the write succeeds or the dispatch fails.
func (dispatcher *Dispatcher) DispatchFile(destination string, content string) Outcome {
	if writeError := dispatcher.fileWriter.WriteFile(destination, content); writeError != nil {
		sinkError := &types.SinkError{Sink: "file", Err: writeError}
		return Outcome{
			Kind:    OutcomeFailure,
			Message: fmt.Sprintf("failed to write %s", destination),
			Cause:   sinkError,
		}
	}
	return Outcome{
		Kind:        OutcomeSuccess,
		Message:     fmt.Sprintf("export written to %s", destination),
		Destination: destination,
	}
}

// DispatchClipboard writes content to the clipboard, retrying once with
// truncated content when the payload exceeds the clipboard threshold, and
// finally offering a file fallback. Failure is only reported once every
// option is exhausted or declined.
func (dispatcher *Dispatcher) DispatchClipboard(content string) Outcome {
	if outcome, cancelled := dispatcher.confirmVeryLarge(content); cancelled {
		return outcome
	}

	primaryError := dispatcher.primaryWriter.WritePrimary(content)
	if primaryError == nil {
		return Outcome{Kind: OutcomeSuccess, Message: "export copied to clipboard"}
	}

	if len(content) > clipboardThresholdBytes {
		truncatedContent := content[:clipboardThresholdBytes] + clipboardTruncationNotice
		if retryError := dispatcher.primaryWriter.WritePrimary(truncatedContent); retryError == nil {
			return Outcome{
				Kind:    OutcomeSuccessTruncated,
				Message: "export copied to clipboard with truncation",
			}
		}
	}

	return dispatcher.offerFileFallback(content, primaryError)
}

// offerFileFallback prompts for a destination and persists the full content
// there. Declining the prompt or failing the write ends the dispatch.
func (dispatcher *Dispatcher) offerFileFallback(content string, primaryError error) Outcome {
	destination, accepted := dispatcher.interactor.PromptDestination()
	if !accepted {
		return Outcome{
			Kind:    OutcomeFailure,
			Message: "clipboard write failed and the file fallback was declined",
			Cause:   &types.SinkError{Sink: "clipboard", Err: primaryError},
		}
	}
	if writeError := dispatcher.fileWriter.WriteFile(destination, content); writeError != nil {
		return Outcome{
			Kind:    OutcomeFailure,
			Message: fmt.Sprintf("clipboard write failed and the fallback write to %s failed", destination),
			Cause:   &types.SinkError{Sink: "file", Err: writeError},
		}
	}
	return Outcome{
		Kind:        OutcomeSuccessFileFallback,
		Message:     fmt.Sprintf("clipboard unavailable; export written to %s", destination),
		Destination: destination,
	}
}

// confirmVeryLarge gates dispatch of very large content behind an explicit
// confirmation. Declining is a clean cancellation.
func (dispatcher *Dispatcher) confirmVeryLarge(content string) (Outcome, bool) {
	if len(content) <= veryLargeThresholdBytes {
		return Outcome{}, false
	}
	if dispatcher.interactor.ConfirmLargeContent(utils.FormatFileSize(int64(len(content)))) {
		return Outcome{}, false
	}
	return Outcome{
		Kind:    OutcomeCancelled,
		Message: "export cancelled",
		Cause:   types.ErrCancelled,
	}, true
}
