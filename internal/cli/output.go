package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/polykit/internal/poly"
	"github.com/roach88/polykit/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Algebra failure or failing scenarios
	ExitCommandError = 2 // Command error (bad input, config, workspace)
)

// Error codes for failures that do not come from the poly package, which
// reports its own codes (DIVIDE_BY_ZERO, PARSE, ...).
const (
	ErrCodeConfig    = "E_CONFIG"
	ErrCodeWorkspace = "E_WORKSPACE"
	ErrCodeNotFound  = "E_NOT_FOUND"
	ErrCodeGeneric   = "E_GENERIC"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
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

// Texter is implemented by results with a human-readable rendering.
type Texter interface {
	Text() string
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
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	if t, ok := data.(Texter); ok {
		fmt.Fprintln(f.Writer, t.Text())
		return nil
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err through the formatter and returns the matching ExitError.
// Malformed input, config and workspace problems exit with ExitCommandError.
// Algebraic failures such as a negative discriminant exit with ExitFailure.
// details, when non-nil, carries partial results.
func (f *OutputFormatter) Fail(err error, details any) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		msg := exitErr.Message
		if exitErr.Err != nil {
			msg = exitErr.Err.Error()
		}
		_ = f.Error(exitErr.Message, msg, details)
		return exitErr
	}

	code, exit := classify(err)
	_ = f.Error(code, err.Error(), details)
	return WrapExitError(exit, code, err)
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound, ExitCommandError
	case poly.IsArgumentError(err):
		return string(poly.CodeOf(err)), ExitCommandError
	case poly.IsArithmeticError(err):
		return string(poly.CodeOf(err)), ExitFailure
	}
	return ErrCodeGeneric, ExitFailure
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
