package exitcode

import (
	"os"
	"strings"

	"github.com/lasatanica/backoffice/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates the API could not be reached
	NetworkError = 6

	// ServerError indicates the API answered with a 5xx
	ServerError = 7

	// ValidationError indicates rejected input, local or from the API
	ValidationError = 8

	// Interrupted indicates the user cancelled with a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code. Taxonomy errors map by
// kind; anything else is checked for cobra usage messages.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if _, ok := errors.As(err); ok {
		switch errors.KindOf(err) {
		case errors.KindAuthentication:
			return AuthError
		case errors.KindNetwork:
			return NetworkError
		case errors.KindServer:
			return ServerError
		case errors.KindValidation:
			return ValidationError
		default:
			return GeneralError
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, usage := range []string{"unknown command", "unknown flag", "invalid argument", "required flag", "accepts ", "requires at least"} {
		if strings.Contains(errMsg, usage) {
			return UsageError
		}
	}
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case ServerError:
		return "Server error"
	case ValidationError:
		return "Validation error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
