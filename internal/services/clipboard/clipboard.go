// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/temirov/treepick/internal/sink"
)

// Service writes export documents to the system clipboard using
// github.com/atotto/clipboard. It serves as the dispatcher's primary
// writer for the clipboard sink.
type Service struct{}

// NewService constructs a clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// WritePrimary copies text to the system clipboard.
func (service *Service) WritePrimary(content string) error {
	return clipboard.WriteAll(content)
}

var _ sink.PrimaryWriter = (*Service)(nil)
