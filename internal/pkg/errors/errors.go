// Package errors provides error types and handling utilities for Memo.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// User errors (Exit Code 1)
	ErrNoStagedChanges ErrorCode = iota + 100
	ErrConfig
	ErrValidation
	ErrNotFound
	ErrMissingCredential
	ErrInvalidArguments

	// System errors (Exit Code 2)
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrFileSystem

	// External errors (Exit Code 3)
	ErrGeneration ErrorCode = iota + 300
	ErrTimeout
)

// ExitCode returns the appropriate exit code for an error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c >= 100 && c < 200:
		return 1 // User errors
	case c >= 200 && c < 300:
		return 2 // System errors
	case c >= 300:
		return 3 // External errors
	default:
		return 1
	}
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNoStagedChanges:
		return "NoStagedChanges"
	case ErrConfig:
		return "Config"
	case ErrValidation:
		return "Validation"
	case ErrNotFound:
		return "NotFound"
	case ErrMissingCredential:
		return "MissingCredential"
	case ErrInvalidArguments:
		return "InvalidArguments"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrFileSystem:
		return "FileSystem"
	case ErrGeneration:
		return "Generation"
	case ErrTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetExitCode returns the appropriate exit code for an error.
func GetExitCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1 // Default to user error
}

// Common error constructors with suggestions

// NewNoStagedChangesError creates an error for no staged changes.
func NewNoStagedChangesError() *AppError {
	return &AppError{
		Code:       ErrNoStagedChanges,
		Message:    "no staged changes found",
		Suggestion: "Use 'git add <files>' to stage changes before generating a commit message",
	}
}

// NewProviderUnavailableError creates an error for a provider with no
// resolvable credential.
func NewProviderUnavailableError(provider string) *AppError {
	envVar := strings.ToUpper(provider) + "_API_KEY"
	return &AppError{
		Code:       ErrMissingCredential,
		Message:    fmt.Sprintf("no credential found for provider %q", provider),
		Suggestion: fmt.Sprintf("Set a key with 'memo auth set %s <key>' or export %s", provider, envVar),
	}
}

// NewGenerationError creates an error for a provider-side generation failure.
func NewGenerationError(provider string, err error) *AppError {
	return &AppError{
		Code:       ErrGeneration,
		Message:    fmt.Sprintf("%s provider error", provider),
		Cause:      err,
		Suggestion: "Check your API key and network connectivity",
	}
}

// NewNotFoundError creates an error for an unknown configuration key.
func NewNotFoundError(key string) *AppError {
	return &AppError{
		Code:       ErrNotFound,
		Message:    fmt.Sprintf("unknown configuration key: %s", key),
		Suggestion: "Run 'memo config show' to list valid keys",
	}
}

// NewValidationError creates an error for bad CLI input or config values.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

// NewConfigError creates a warning-level error for a config layer that
// failed to load. Callers recover by treating the layer as empty.
func NewConfigError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrConfig,
		Message: fmt.Sprintf("failed to load config file %s", path),
		Cause:   err,
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if output != "" {
		appErr.Message = "git command failed: " + strings.TrimSpace(output)
	}
	return appErr
}

// NewFileSystemError creates an error for file read/write failures.
func NewFileSystemError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrFileSystem,
		Message: fmt.Sprintf("filesystem error at %s", path),
		Cause:   err,
	}
}

// NewTimeoutError creates an error for timeouts.
func NewTimeoutError(err error) *AppError {
	return &AppError{
		Code:       ErrTimeout,
		Message:    "request timed out",
		Cause:      err,
		Suggestion: "Check your network connection or try again later",
	}
}

// FormatError formats an error for user display.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Error()))
		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
// API keys and other sensitive data are automatically masked.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))
		if appErr.Cause != nil {
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}
		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, SanitizeErrorMessage(err.Error())))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// apiKeyPattern matches common API key shapes (OpenAI sk-..., Google AIza...).
var apiKeyPattern = regexp.MustCompile(`(sk-[a-zA-Z0-9_-]{20,}|AIza[a-zA-Z0-9_-]{20,})`)

// SanitizeErrorMessage masks any API keys in error messages.
func SanitizeErrorMessage(msg string) string {
	return apiKeyPattern.ReplaceAllStringFunc(msg, func(match string) string {
		if len(match) <= 4 {
			return "****"
		}
		return strings.Repeat("*", len(match)-4) + match[len(match)-4:]
	})
}
