package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lasatanica/backoffice/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
		{"ServerError", ServerError, 7},
		{"ValidationError", ValidationError, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code)
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, Success},
		{"unauthorized", errors.NewUnauthorizedError("expired"), AuthError},
		{"forbidden", errors.NewForbiddenError(""), AuthError},
		{"timeout", errors.NewTimeoutError(stderrors.New("deadline")), NetworkError},
		{"transport", errors.NewTransportError(stderrors.New("refused")), NetworkError},
		{"server", errors.NewServerError(503, "down"), ServerError},
		{"validation", errors.NewValidationError("bad iban"), ValidationError},
		{"not found", errors.NewNotFoundError(""), GeneralError},
		{"unexpected status", errors.NewStatusError(409, ""), GeneralError},
		{"wrapped taxonomy error", fmt.Errorf("login: %w", errors.NewUnauthorizedError("")), AuthError},
		{"unknown command", stderrors.New(`unknown command "foo" for "backoffice"`), UsageError},
		{"unknown flag", stderrors.New("unknown flag: --bogus"), UsageError},
		{"wrong arg count", stderrors.New("accepts 1 arg(s), received 0"), UsageError},
		{"plain error", stderrors.New("something broke"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineExitCode(tt.err))
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	assert.Equal(t, "Server error", GetExitCodeDescription(ServerError))
	assert.Equal(t, "Validation error", GetExitCodeDescription(ValidationError))
	assert.Equal(t, "Unknown error", GetExitCodeDescription(42))
}
