// Package tokenizer estimates token counts for exported text so the summary
// footer can report an approximate model cost.
package tokenizer

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates the number of tokens in a string.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// NewOpenAICounter constructs a Counter for the named OpenAI model using
// tiktoken encodings.
func NewOpenAICounter(modelName string) (Counter, error) {
	if modelName == "" {
		return nil, errors.New("tokenizer model name is empty")
	}
	encoding, encodingError := tiktoken.EncodingForModel(modelName)
	if encodingError != nil {
		return nil, fmt.Errorf("resolve encoding for model %s: %w", modelName, encodingError)
	}
	return openAICounter{encoding: encoding, name: modelName}, nil
}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
