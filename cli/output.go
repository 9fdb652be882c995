package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/izouxv/goShamir/decoder"
	"github.com/izouxv/goShamir/shamir"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The shares could not be combined into a secret
	ExitCommandError = 2 // Command error (unreadable file, malformed document, bad flags)
)

// Error codes reported in the output envelope.
const (
	ErrCodeGeneric          = "E001"
	ErrCodeInput            = "E100"
	ErrCodeReconstruction   = "E200"
	ErrCodeInsufficient     = "E201"
	ErrCodeDuplicateX       = "E202"
	ErrCodeInexactDivision  = "E203"
	ErrCodeInvalidThreshold = "E204"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorCode classifies err for the output envelope and picks the exit code.
func errorCode(err error) (string, int) {
	switch {
	case errors.Is(err, shamir.ErrInsufficientPoints):
		return ErrCodeInsufficient, ExitFailure
	case errors.Is(err, shamir.ErrDuplicateX):
		return ErrCodeDuplicateX, ExitFailure
	case errors.Is(err, shamir.ErrInexactDivision):
		return ErrCodeInexactDivision, ExitFailure
	case errors.Is(err, shamir.ErrInvalidThreshold), errors.Is(err, decoder.ErrInvalidThreshold):
		return ErrCodeInvalidThreshold, ExitCommandError
	case errors.Is(err, shamir.ErrInvalidShare):
		return ErrCodeReconstruction, ExitFailure
	default:
		return ErrCodeInput, ExitCommandError
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format. Text output
// prints data with its String method.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// Fail reports err through the formatter and returns the matching ExitError.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := errorCode(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err))
	return WrapExitError(exit, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
