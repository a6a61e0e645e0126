package cmd

import (
	"fmt"
	"strings"

	"github.com/lasatanica/backoffice/internal/errors"
)

// ErrorWithSuggestion wraps an error with actionable recovery suggestions
type ErrorWithSuggestion struct {
	Message     string
	Suggestions []string
	err         error
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if e.err != nil {
		b.WriteString("\n\nDetails: ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.err
}

// NewErrorWithSuggestions creates an error with recovery suggestions
func NewErrorWithSuggestions(msg string, err error, suggestions ...string) error {
	return &ErrorWithSuggestion{
		Message:     msg,
		Suggestions: suggestions,
		err:         err,
	}
}

// ConfigLoadError creates a helpful error for configuration loading failures
func ConfigLoadError(configPath string, err error) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("Failed to load configuration from %q", displayPath(configPath)),
		err,
		"Show the configuration file path: backoffice config path",
		"Check the YAML syntax and the api_timeout format (\"30\" or \"30s\")",
		"Unset BACKOFFICE_CONFIG to fall back to the default file",
	)
}

// ContractMismatchError reports service endpoints the contract does not describe
func ContractMismatchError(missing []string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("%d endpoint(s) used by the client are missing from the API contract", len(missing)),
		errors.New(errors.KindValidation, errors.ErrCodeNotInContract, strings.Join(missing, ", ")),
		"Add the endpoints to internal/contract/openapi.yaml",
		"List the documented endpoints: backoffice contract",
	)
}

// LogFileError creates a helpful error when the console log file cannot be opened
func LogFileError(path string, err error) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("Cannot open log file %s", path),
		err,
		"Choose another location: --log-file <path>",
		"Set log_file in the config file",
	)
}

// TokenDecodeError creates a helpful error for unreadable tokens
func TokenDecodeError(err error) error {
	return NewErrorWithSuggestions(
		"Failed to decode token",
		err,
		"Pass the raw JWT without the \"Bearer \" prefix",
		"Copy the access_token value returned by /auth/login",
	)
}
