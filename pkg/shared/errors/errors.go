package errors

import (
	"errors"
	"fmt"
)

// Conditions that end an export attempt without a platform call.
var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrNoMatchingPlatform  = errors.New("no remote matches a supported platform")
	ErrUserDeclined        = errors.New("export declined by user")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// NetworkError reports a failed HTTP exchange: a transport error or a non-2xx status.
type NetworkError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError wraps a transport error for the given request.
func NewNetworkError(method, url string, err error) error {
	return &NetworkError{Method: method, URL: url, Err: err}
}

// NewStatusError reports a non-2xx response for the given request.
func NewStatusError(method, url string, status int) error {
	return &NetworkError{Method: method, URL: url, StatusCode: status}
}

// ParseError reports a response or report body that could not be decoded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps a decoding error of the named source.
func NewParseError(source string, err error) error {
	return &ParseError{Source: source, Err: err}
}

// CommandError represents an error that occurred during command execution, carrying the exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
	Args        interface{}
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError instance, encapsulating args and the error message.
func NewCommandError(args interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Args:        args,
	}
}
