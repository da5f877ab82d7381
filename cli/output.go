package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"hei-calculator/domain"
	"hei-calculator/input"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitInvalidInput = 1 // Terms or flags failed validation
	ExitCommandError = 2 // Config, I/O, network or other command errors
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error

	reported bool // already written by OutputFormatter.Fail
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

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not
// ExitErrors count as command errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// classify wraps err with ExitInvalidInput when it is a validation failure.
func classify(message string, err error) *ExitError {
	var invalid *domain.InvalidTermsError
	var fieldErr *input.FieldError
	if errors.As(err, &invalid) || errors.As(err, &fieldErr) {
		return WrapExitError(ExitInvalidInput, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope for --format json.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// JSON reports whether structured output was requested.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success writes data in the JSON envelope, or the text callback's output.
func (f *OutputFormatter) Success(data any, text func(io.Writer) error) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	return text(f.Writer)
}

// Fail reports err in the configured format and returns it as an ExitError.
func (f *OutputFormatter) Fail(exitErr *ExitError) error {
	var field string
	var invalid *domain.InvalidTermsError
	var fieldErr *input.FieldError
	switch {
	case errors.As(exitErr, &invalid):
		field = invalid.Field
	case errors.As(exitErr, &fieldErr):
		field = fieldErr.Field
	}

	if f.JSON() {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Message: exitErr.Error(), Field: field},
		})
	} else {
		fmt.Fprintf(f.errWriter(), "Error: %s\n", exitErr.Error())
	}
	exitErr.reported = true
	return exitErr
}

// VerboseLog writes diagnostics to ErrWriter when verbose mode is on.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
