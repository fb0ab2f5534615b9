package errors

import (
	"errors"
	"fmt"
)

// Exit codes for ipkit
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitParseError      = 2
	ExitIOError         = 3
	ExitConfigError     = 4
	ExitExpressionError = 5
	ExitDomainError     = 6
	ExitNoGroupFound    = 7
)

// IPKitError is the base error type for ipkit
type IPKitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *IPKitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *IPKitError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *IPKitError) ExitCode() int {
	return e.Code
}

// New creates a new IPKitError
func New(code int, message string) *IPKitError {
	return &IPKitError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an IPKitError
func Wrap(code int, message string, cause error) *IPKitError {
	return &IPKitError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinel errors. They carry exit codes so they can be returned as-is.
var (
	ErrConfigurationRequired = New(ExitConfigError, "configuration required to filter based on groups")
	ErrNoGroupsDefined       = New(ExitConfigError, "no groups defined in configuration")
	ErrInputConsumed         = New(ExitGeneralError, "input already consumed")
)

// Common error constructors

// ParseError returns an error for text that is not a valid address or network.
// The raw text is kept in the message.
func ParseError(raw string, cause error) *IPKitError {
	return Wrap(ExitParseError, fmt.Sprintf("invalid address or network: %s", raw), cause)
}

// IOError returns an error for a failed read, open or spawn
func IOError(op string, cause error) *IPKitError {
	return Wrap(ExitIOError, op, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *IPKitError {
	return Wrap(ExitConfigError, message, cause)
}

// ExpressionError returns an error for filter expression failures
func ExpressionError(message string, cause error) *IPKitError {
	return Wrap(ExitExpressionError, message, cause)
}

// DomainError returns an error for arithmetic requests that make no sense
// for the given value, such as a subnet prefix shorter than the network's.
func DomainError(message string) *IPKitError {
	return New(ExitDomainError, message)
}

// NoGroupFound returns an error for a value no group contains
func NoGroupFound(value string) *IPKitError {
	return New(ExitNoGroupFound, fmt.Sprintf("no group found for %s", value))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *IPKitError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var ipkitErr *IPKitError
	if errors.As(err, &ipkitErr) {
		return ipkitErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
