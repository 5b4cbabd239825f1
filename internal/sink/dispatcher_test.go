package sink

import (
	"errors"
	"strings"
	"testing"

	"github.com/temirov/treepick/internal/types"
)

type scriptedPrimary struct {
	failures   int
	writeCalls []string
}

func (primary *scriptedPrimary) WritePrimary(content string) error {
	primary.writeCalls = append(primary.writeCalls, content)
	if primary.failures > 0 {
		primary.failures--
		return errors.New("clipboard unavailable")
	}
	return nil
}

type scriptedFileWriter struct {
	failWrites   bool
	writtenPath  string
	writtenBytes int
}

func (fileWriter *scriptedFileWriter) WriteFile(destination string, content string) error {
	if fileWriter.failWrites {
		return errors.New("disk full")
	}
	fileWriter.writtenPath = destination
	fileWriter.writtenBytes = len(content)
	return nil
}

type scriptedInteractor struct {
	destination      string
	acceptPrompt     bool
	confirmLarge     bool
	promptCalls      int
	confirmationArgs []string
}

func (interactor *scriptedInteractor) PromptDestination() (string, bool) {
	interactor.promptCalls++
	return interactor.destination, interactor.acceptPrompt
}

func (interactor *scriptedInteractor) ConfirmLargeContent(sizeDescription string) bool {
	interactor.confirmationArgs = append(interactor.confirmationArgs, sizeDescription)
	return interactor.confirmLarge
}

func TestDispatchClipboardSuccessOnFirstAttempt(testingHandle *testing.T) {
	primary := &scriptedPrimary{}
	dispatcher := NewDispatcher(primary, &scriptedFileWriter{}, &scriptedInteractor{})

	outcome := dispatcher.DispatchClipboard("small content")

	if outcome.Kind != OutcomeSuccess || !outcome.Succeeded() {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(primary.writeCalls) != 1 {
		testingHandle.Fatalf("expected exactly one primary write, got %d", len(primary.writeCalls))
	}
}

func TestDispatchClipboardAtThresholdNeverTruncates(testingHandle *testing.T) {
	content := strings.Repeat("x", clipboardThresholdBytes)
	primary := &scriptedPrimary{}
	dispatcher := NewDispatcher(primary, &scriptedFileWriter{}, &scriptedInteractor{})

	outcome := dispatcher.DispatchClipboard(content)

	if outcome.Kind != OutcomeSuccess {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(primary.writeCalls) != 1 || len(primary.writeCalls[0]) != clipboardThresholdBytes {
		testingHandle.Fatalf("threshold-sized content must pass through untouched")
	}
}

func TestDispatchClipboardOneByteOverRetriesTruncatedOnce(testingHandle *testing.T) {
	content := strings.Repeat("x", clipboardThresholdBytes+1)
	primary := &scriptedPrimary{failures: 1}
	dispatcher := NewDispatcher(primary, &scriptedFileWriter{}, &scriptedInteractor{})

	outcome := dispatcher.DispatchClipboard(content)

	if outcome.Kind != OutcomeSuccessTruncated {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(primary.writeCalls) != 2 {
		testingHandle.Fatalf("expected exactly one truncated retry, got %d writes", len(primary.writeCalls))
	}
	retryContent := primary.writeCalls[1]
	if !strings.HasSuffix(retryContent, clipboardTruncationNotice) {
		testingHandle.Fatalf("retry content must end with the truncation notice")
	}
	if len(retryContent) != clipboardThresholdBytes+len(clipboardTruncationNotice) {
		testingHandle.Fatalf("retry content length = %d, want threshold plus notice", len(retryContent))
	}
}

func TestDispatchClipboardSmallFailureOffersFileFallback(testingHandle *testing.T) {
	primary := &scriptedPrimary{failures: 2}
	fileWriter := &scriptedFileWriter{}
	interactor := &scriptedInteractor{destination: "export.md", acceptPrompt: true}
	dispatcher := NewDispatcher(primary, fileWriter, interactor)

	outcome := dispatcher.DispatchClipboard("small content")

	if outcome.Kind != OutcomeSuccessFileFallback {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(primary.writeCalls) != 1 {
		testingHandle.Fatalf("content under the threshold must not be retried, got %d writes", len(primary.writeCalls))
	}
	if fileWriter.writtenPath != "export.md" || fileWriter.writtenBytes != len("small content") {
		testingHandle.Fatalf("fallback must persist the full content, got %+v", fileWriter)
	}
}

func TestDispatchClipboardDeclinedFallbackIsFailure(testingHandle *testing.T) {
	primary := &scriptedPrimary{failures: 1}
	interactor := &scriptedInteractor{acceptPrompt: false}
	dispatcher := NewDispatcher(primary, &scriptedFileWriter{}, interactor)

	outcome := dispatcher.DispatchClipboard("content")

	if outcome.Kind != OutcomeFailure || outcome.Succeeded() {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	var sinkError *types.SinkError
	if !errors.As(outcome.Cause, &sinkError) {
		testingHandle.Fatalf("failure must carry the underlying SinkError, got %v", outcome.Cause)
	}
}

func TestDispatchClipboardFallbackWriteFailureIsFailure(testingHandle *testing.T) {
	primary := &scriptedPrimary{failures: 2}
	fileWriter := &scriptedFileWriter{failWrites: true}
	interactor := &scriptedInteractor{destination: "export.md", acceptPrompt: true}
	dispatcher := NewDispatcher(primary, fileWriter, interactor)

	outcome := dispatcher.DispatchClipboard("content")

	if outcome.Kind != OutcomeFailure {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestVeryLargeContentRequiresConfirmation(testingHandle *testing.T) {
	content := strings.Repeat("x", veryLargeThresholdBytes+1)

	declining := &scriptedInteractor{confirmLarge: false}
	dispatcher := NewDispatcher(&scriptedPrimary{}, &scriptedFileWriter{}, declining)
	outcome := dispatcher.DispatchClipboard(content)
	if outcome.Kind != OutcomeCancelled {
		testingHandle.Fatalf("declining must cancel cleanly, got %+v", outcome)
	}
	if !errors.Is(outcome.Cause, types.ErrCancelled) {
		testingHandle.Fatalf("cancellation must carry ErrCancelled")
	}
	if len(declining.confirmationArgs) != 1 {
		testingHandle.Fatalf("expected one confirmation prompt, got %d", len(declining.confirmationArgs))
	}

	accepting := &scriptedInteractor{confirmLarge: true}
	primary := &scriptedPrimary{}
	dispatcher = NewDispatcher(primary, &scriptedFileWriter{}, accepting)
	outcome = dispatcher.DispatchClipboard(content)
	if !outcome.Succeeded() {
		testingHandle.Fatalf("confirmed dispatch must proceed, got %+v", outcome)
	}
}

func TestDispatchFileHasNoFallback(testingHandle *testing.T) {
	fileWriter := &scriptedFileWriter{failWrites: true}
	interactor := &scriptedInteractor{destination: "other.md", acceptPrompt: true}
	dispatcher := NewDispatcher(&scriptedPrimary{}, fileWriter, interactor)

	outcome := dispatcher.DispatchFile("export.md", "content")

	if outcome.Kind != OutcomeFailure {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	if interactor.promptCalls != 0 {
		testingHandle.Fatalf("file sink must never prompt for a fallback")
	}
}

func TestDispatchFileSuccess(testingHandle *testing.T) {
	fileWriter := &scriptedFileWriter{}
	dispatcher := NewDispatcher(&scriptedPrimary{}, fileWriter, &scriptedInteractor{})

	outcome := dispatcher.DispatchFile("export.md", "content")

	if outcome.Kind != OutcomeSuccess || outcome.Destination != "export.md" {
		testingHandle.Fatalf("unexpected outcome: %+v", outcome)
	}
	if fileWriter.writtenPath != "export.md" {
		testingHandle.Fatalf("content must reach the destination")
	}
}
