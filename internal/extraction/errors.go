package extraction

import (
	"errors"
	"fmt"
)

// StatementErrorCode represents specific statement-level failure types.
type StatementErrorCode string

const (
	ErrUnsupportedFormat StatementErrorCode = "UNSUPPORTED_FORMAT"
	ErrEmptyStatement    StatementErrorCode = "EMPTY_STATEMENT"
)

// StatementError is a structured error for fatal statement failures.
// Per-row parse failures are not errors; they are collected as
// domain.SkippedRow diagnostics and processing continues.
type StatementError struct {
	Code    StatementErrorCode
	Message string
	Cause   error
}

func (e *StatementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *StatementError) Unwrap() error {
	return e.Cause
}

// IsStatementError reports whether err is a StatementError with the given code.
func IsStatementError(err error, code StatementErrorCode) bool {
	var se *StatementError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func unsupportedFormat(msg string, cause error) *StatementError {
	return &StatementError{Code: ErrUnsupportedFormat, Message: msg, Cause: cause}
}

func emptyStatement(msg string) *StatementError {
	return &StatementError{Code: ErrEmptyStatement, Message: msg}
}
