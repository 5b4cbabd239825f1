package types

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a host path no longer exists.
var ErrNotFound = errors.New("path not found")

// ErrCancelled reports that the user declined to proceed. It is a distinct
// outcome, not a failure, and callers must never conflate it with an error
// they surface as such.
var ErrCancelled = errors.New("cancelled by user")

// ConfigurationError reports an invalid export configuration. It is fatal
// and raised before any I/O happens.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", configurationError.Field, configurationError.Reason)
}

// PathError reports a stale or missing node lookup. Selection operations
// treat it as a no-op; export treats it as "skip without counting".
type PathError struct {
	Path string
	Err  error
}

func (pathError *PathError) Error() string {
	if pathError.Err == nil {
		return fmt.Sprintf("path %s: not found", pathError.Path)
	}
	return fmt.Sprintf("path %s: %v", pathError.Path, pathError.Err)
}

func (pathError *PathError) Unwrap() error {
	return pathError.Err
}

// ReadError reports that one file could not be read during export. The
// pipeline recovers locally by emitting an inline error block.
type ReadError struct {
	Path string
	Err  error
}

func (readError *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", readError.Path, readError.Err)
}

func (readError *ReadError) Unwrap() error {
	return readError.Err
}

// SinkError reports a failed sink write. The dispatcher only surfaces it
// once every fallback option is exhausted or declined.
type SinkError struct {
	Sink string
	Err  error
}

func (sinkError *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", sinkError.Sink, sinkError.Err)
}

func (sinkError *SinkError) Unwrap() error {
	return sinkError.Err
}
