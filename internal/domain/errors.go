package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the public API. Check them with errors.Is.
var (
	// ErrValidation is returned when a descriptor or option set is rejected
	// before cardano-cli is invoked.
	ErrValidation = errors.New("cardanocli: validation failed")

	// ErrCLI is returned when cardano-cli exits with a non-zero status.
	ErrCLI = errors.New("cardanocli: cardano-cli failed")

	// ErrDecode is returned when cardano-cli output cannot be decoded.
	ErrDecode = errors.New("cardanocli: unexpected cardano-cli output")

	// ErrClosed is returned by operations on a closed client.
	ErrClosed = errors.New("cardanocli: client closed")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// CLIError carries the outcome of a failed cardano-cli invocation.
// Stderr is cardano-cli's own message and is never rewritten.
type CLIError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CLIError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return msg
}

// Is reports ErrCLI as the kind of every CLIError.
func (e *CLIError) Is(target error) bool { return target == ErrCLI }

// Unwrap returns the underlying process error, if any.
func (e *CLIError) Unwrap() error { return e.Err }

// DecodeError reports output that could not be decoded for an operation.
type DecodeError struct {
	Op  string
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode %s output", e.Op)
	}
	return fmt.Sprintf("decode %s output: %v", e.Op, e.Err)
}

// Is reports ErrDecode as the kind of every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Unwrap returns the parse error.
func (e *DecodeError) Unwrap() error { return e.Err }
