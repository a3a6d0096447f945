package rahasher

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"romhash/internal/platform"
	"romhash/internal/services"
)

// Kind classifies why a hash could not be produced.
type Kind string

const (
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindToolExecution       Kind = "tool_execution_failure"
	KindNoOutput            Kind = "no_output_captured"
	KindEmptyHash           Kind = "empty_hash"
	KindInvalidFormat       Kind = "invalid_hash_format"
)

// Marker returns the services sentinel used to classify the kind.
func (k Kind) Marker() error {
	switch k {
	case KindUnsupportedPlatform:
		return services.ErrConfiguration
	case KindInvalidFormat:
		return services.ErrValidation
	default:
		return services.ErrExternalTool
	}
}

// Error describes a failed hash computation. Fields not relevant to Kind are
// left at their zero value.
type Error struct {
	Kind Kind
	Slug string
	Code platform.Code
	Path string
	// ExitCode is the RAHasher exit status, or -1 when the process did not exit normally.
	ExitCode int
	// Stderr is nil when the stream was not captured, distinct from empty output.
	Stderr *string
	// Value is the rejected stdout for KindInvalidFormat.
	Value string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnsupportedPlatform:
		return fmt.Sprintf("platform %q is not supported by RAHasher", e.Slug)
	case KindToolExecution:
		if e.Err != nil {
			return fmt.Sprintf("RAHasher could not be run for %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("RAHasher failed with code %d. stderr=%s", e.ExitCode, e.stderrText())
	case KindNoOutput:
		return "RAHasher did not return a hash"
	case KindEmptyHash:
		return fmt.Sprintf("RAHasher returned an empty hash for platform %d and file %s", e.Code, e.Path)
	case KindInvalidFormat:
		return fmt.Sprintf("RAHasher returned an invalid hash %s for platform %d and file %s", strconv.Quote(e.Value), e.Code, e.Path)
	default:
		return "RAHasher failed"
	}
}

func (e *Error) stderrText() string {
	if e.Stderr == nil {
		return "<not captured>"
	}
	return *e.Stderr
}

// Unwrap exposes the services marker, a timeout marker when the context
// deadline expired, and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind.Marker()}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		errs = append(errs, services.ErrTimeout)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ErrorKind returns the failure kind as a string for log classification.
func (e *Error) ErrorKind() string {
	return string(e.Kind)
}

// KindOf returns the Kind of err when it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var hashErr *Error
	if errors.As(err, &hashErr) {
		return hashErr.Kind, true
	}
	return "", false
}
