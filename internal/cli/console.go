package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/temirov/treepick/internal/sink"
)

const (
	fallbackDestinationPrompt = "Clipboard write failed. Enter a file path to save the export instead (empty to give up): "
	largeContentPromptFormat  = "The export is %s. Proceed anyway? [y/N]: "
)

// consoleInteractor answers the dispatcher's prompts on the terminal.
type consoleInteractor struct {
	input  io.Reader
	output io.Writer
}

func newConsoleInteractor() *consoleInteractor {
	return &consoleInteractor{input: os.Stdin, output: os.Stderr}
}

// PromptDestination implements sink.Interactor.
func (interactor *consoleInteractor) PromptDestination() (string, bool) {
	fmt.Fprint(interactor.output, fallbackDestinationPrompt)
	line, readError := bufio.NewReader(interactor.input).ReadString('\n')
	if readError != nil && line == "" {
		return "", false
	}
	destination := strings.TrimSpace(line)
	if destination == "" {
		return "", false
	}
	return destination, true
}

// ConfirmLargeContent implements sink.Interactor.
func (interactor *consoleInteractor) ConfirmLargeContent(sizeDescription string) bool {
	fmt.Fprintf(interactor.output, largeContentPromptFormat, sizeDescription)
	line, readError := bufio.NewReader(interactor.input).ReadString('\n')
	if readError != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// filesystemSinkWriter persists export documents for the file sink and the
// clipboard fallback.
type filesystemSinkWriter struct{}

// WriteFile implements sink.FileWriter.
func (filesystemSinkWriter) WriteFile(destination string, content string) error {
	return os.WriteFile(destination, []byte(content), 0o644)
}

var (
	_ sink.Interactor = (*consoleInteractor)(nil)
	_ sink.FileWriter = filesystemSinkWriter{}
)
