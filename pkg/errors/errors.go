// Package errors provides structured error types for hpdgraph.
//
// Every failure that reaches the operator carries a machine-readable [Code]
// so that commands can distinguish a corrupted dataset (fatal, the run
// aborts) from a user-facing lookup miss (reported, non-zero exit) without
// string matching.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - MALFORMED_*: Input datasets that violate their fixed schema
//   - *NOT_FOUND: Lookups that matched nothing
//   - WRITE_FAILED: Exported files that could not be written
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNameNotFound, "unable to find a match for the name %q", name)
//	if errors.Is(err, errors.ErrCodeNameNotFound) {
//	    // Report to the operator
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDataset, parseErr, "row %d: registration end date", row)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidBBL   Code = "INVALID_BBL"

	// Dataset errors
	ErrCodeMalformedDataset Code = "MALFORMED_DATASET"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNameNotFound Code = "NAME_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Output errors
	ErrCodeWriteFailed Code = "WRITE_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error

	// Dataset names the input table the error was found in, when known.
	Dataset string
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Dataset != "" {
		msg = e.Dataset + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error caused by cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// InDataset records dataset on the outermost *Error in err's chain that has
// no dataset yet, and returns err. Errors without an *Error pass through.
func InDataset(err error, dataset string) error {
	var e *Error
	if errors.As(err, &e) && e.Dataset == "" {
		e.Dataset = dataset
	}
	return err
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message shown to the operator: the error without
// its code. Malformed dataset errors keep their cause, since the parse
// failure is the only pointer to the offending field.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Dataset != "" {
		msg = e.Dataset + ": " + msg
	}
	if e.Code == ErrCodeMalformedDataset && e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Hint suggests a next step for the operator, or returns "".
func Hint(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	switch {
	case e.Code == ErrCodeFileNotFound && e.Dataset != "":
		return "run 'hpdgraph fetch' to download the HPD datasets"
	case e.Code == ErrCodeMalformedDataset:
		return "the file may be truncated; run 'hpdgraph fetch --max-age 0' to download it again"
	case e.Code == ErrCodeWriteFailed:
		return "check that the output directory is writable and the disk is not full"
	case e.Code == ErrCodeNameNotFound:
		return "names are matched against the upper-case form used by HPD, e.g. 'JOHN SMITH'"
	}
	return ""
}

// IsFatal reports whether err indicates a corrupted input dataset.
// Fatal errors abort the run instead of skipping the offending row.
func IsFatal(err error) bool {
	return Is(err, ErrCodeMalformedDataset)
}
