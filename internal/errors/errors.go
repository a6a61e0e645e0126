package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an API failure. Callers branch on the kind, never on the
// message text.
type Kind int

const (
	// KindAPI is the catch-all for unexpected statuses and local failures
	KindAPI Kind = iota
	// KindNetwork is a transport failure or timeout
	KindNetwork
	// KindAuthentication is a 401 or 403 from the server
	KindAuthentication
	// KindValidation is a 422 from the server
	KindValidation
	// KindNotFound is a 404 from the server
	KindNotFound
	// KindServer is any 5xx from the server
	KindServer
)

// String returns the taxonomy name of the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindServer:
		return "ServerError"
	default:
		return "APIError"
	}
}

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error codes
const (
	// Network errors (NET-001 to NET-099)
	ErrCodeTimeout   ErrorCode = "NET-001"
	ErrCodeTransport ErrorCode = "NET-002"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeUnauthorized ErrorCode = "AUTH-001"
	ErrCodeForbidden    ErrorCode = "AUTH-002"

	// Validation errors (VAL-001 to VAL-099)
	ErrCodeValidation ErrorCode = "VAL-001"

	// Not found errors (NF-001 to NF-099)
	ErrCodeNotFound ErrorCode = "NF-001"

	// Server errors (SRV-001 to SRV-099)
	ErrCodeServer ErrorCode = "SRV-001"

	// Generic API errors (API-001 to API-099)
	ErrCodeUnexpectedStatus ErrorCode = "API-001"
	ErrCodeInvalidRequest   ErrorCode = "API-002"
	ErrCodeDecode           ErrorCode = "API-003"
	ErrCodeUnexpected       ErrorCode = "API-004"
	ErrCodeNotInContract    ErrorCode = "API-010"
)

// Error is a classified API failure with code, optional HTTP status and
// server detail, and recovery suggestions
type Error struct {
	Kind        Kind
	Code        ErrorCode
	Message     string
	StatusCode  int
	Detail      string
	Forbidden   bool
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(kind Kind, code ErrorCode, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(kind Kind, code ErrorCode, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithStatus records the HTTP status that produced the error
func (e *Error) WithStatus(status int) *Error {
	e.StatusCode = status
	return e
}

// WithDetail records the server-provided detail message
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// As extracts the taxonomy error from err's chain
func As(err error) (*Error, bool) {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindAPI for errors outside the taxonomy
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return KindAPI
}

func isKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

// IsNetwork reports whether err is a NetworkError
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsAuthentication reports whether err is an AuthenticationError (401 or 403)
func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }

// IsUnauthorized reports whether err is a 401 AuthenticationError, the only
// kind that invalidates the session
func IsUnauthorized(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == KindAuthentication && !apiErr.Forbidden
}

// IsForbidden reports whether err is a 403 AuthenticationError
func IsForbidden(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == KindAuthentication && apiErr.Forbidden
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsServer reports whether err is a ServerError
func IsServer(err error) bool { return isKind(err, KindServer) }

// Common error constructors

// NewTimeoutError creates the NetworkError raised when the transport times out
func NewTimeoutError(cause error) *Error {
	return Wrap(KindNetwork, ErrCodeTimeout, "request timed out", cause).
		WithSuggestion("Check that the server is reachable").
		WithSuggestion("Increase api_timeout if the server is slow")
}

// NewTransportError creates a NetworkError for connectivity failures
func NewTransportError(cause error) *Error {
	return Wrap(KindNetwork, ErrCodeTransport, "network error", cause).
		WithSuggestion("Check your network connection and server_route")
}

// NewUnauthorizedError creates the AuthenticationError for a 401
func NewUnauthorizedError(detail string) *Error {
	return New(KindAuthentication, ErrCodeUnauthorized, "authentication failed, please login again").
		WithStatus(401).
		WithDetail(detail)
}

// NewForbiddenError creates the AuthenticationError for a 403
func NewForbiddenError(detail string) *Error {
	e := New(KindAuthentication, ErrCodeForbidden, "access forbidden, insufficient permissions").
		WithStatus(403).
		WithDetail(detail)
	e.Forbidden = true
	return e
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(detail string) *Error {
	return New(KindNotFound, ErrCodeNotFound, "resource not found").
		WithStatus(404).
		WithDetail(detail)
}

// NewValidationError creates a ValidationError carrying the server detail
func NewValidationError(detail string) *Error {
	return New(KindValidation, ErrCodeValidation, "validation error").
		WithStatus(422).
		WithDetail(detail)
}

// NewServerError creates a ServerError carrying the server detail
func NewServerError(status int, detail string) *Error {
	return New(KindServer, ErrCodeServer, "server error").
		WithStatus(status).
		WithDetail(detail)
}

// NewStatusError creates a generic APIError for any other status >= 400
func NewStatusError(status int, detail string) *Error {
	return New(KindAPI, ErrCodeUnexpectedStatus, fmt.Sprintf("api error %d", status)).
		WithStatus(status).
		WithDetail(detail)
}

// NewInvalidRequestError creates an APIError for a malformed request descriptor
func NewInvalidRequestError(reason string) *Error {
	return New(KindAPI, ErrCodeInvalidRequest, fmt.Sprintf("invalid request: %s", reason))
}

// NewDecodeError creates an APIError for a response body that does not decode
func NewDecodeError(cause error) *Error {
	return Wrap(KindAPI, ErrCodeDecode, "failed to decode response", cause)
}

// NewUnexpectedError creates an APIError for unexpected local failures
func NewUnexpectedError(cause error) *Error {
	return Wrap(KindAPI, ErrCodeUnexpected, "unexpected error", cause)
}

// NewNotInContractError creates an APIError for requests missing from the API contract
func NewNotInContractError(method, path string) *Error {
	return New(KindAPI, ErrCodeNotInContract, fmt.Sprintf("%s %s is not part of the API contract", method, path)).
		WithSuggestion("Run 'backoffice contract' to list known endpoints").
		WithSuggestion("Disable contract_check if the server is newer than this client")
}
