// Package session holds the authenticated session in process memory.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/blake3"

	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// Claims are the access token claims the client reads.
//
// The subject is the user id; nombre and apellidos form the display name.
type Claims struct {
	jwt.RegisteredClaims

	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
}

// DisplayName joins nombre and apellidos
func (c *Claims) DisplayName() string {
	return strings.TrimSpace(c.Nombre + " " + c.Apellidos)
}

// DecodeToken extracts the claims of an access token without verifying its
// signature. The server is the trust boundary: it validates the token on
// every request and answers 401 when it is not acceptable.
func DecodeToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Store is the in-memory session. The zero value is not usable; use New.
type Store struct {
	mu        sync.RWMutex
	token     string
	tokenType string
	expiresAt time.Time
	userID    string
	userName  string

	now func() time.Time
}

// New creates an empty session store
func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock creates an empty session store with a custom clock
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// SetSession stores the login token and the claims decoded from it,
// replacing any previous session
func (s *Store) SetSession(token types.Token, claims *Claims) error {
	if token.AccessToken == "" {
		return fmt.Errorf("access token cannot be empty")
	}
	if claims == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("token has no expiry")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token.AccessToken
	s.tokenType = token.TokenType
	s.expiresAt = claims.ExpiresAt.Time
	s.userID = claims.Subject
	s.userName = claims.DisplayName()
	return nil
}

// Token returns the access token, empty when there is no session
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenType returns the token type reported at login
func (s *Store) TokenType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenType
}

// UserID returns the subject of the token
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// UserName returns the display name of the logged-in user
func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

// ExpiresAt returns the token expiry, zero when there is no session
func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// IsAuthenticated reports whether a non-expired token is held. An expired
// token is cleared as a side effect.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return false
	}
	if !s.expiresAt.After(s.now()) {
		s.reset()
		return false
	}
	return true
}

// Clear drops the session. Clearing an empty session is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Fingerprint identifies the current token without exposing it
func (s *Store) Fingerprint() string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	return Fingerprint(token)
}

// Fingerprint returns the hex BLAKE3 digest of token, empty for no token
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	h := blake3.New()
	_, _ = h.Write([]byte(token))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (s *Store) reset() {
	s.token = ""
	s.tokenType = ""
	s.expiresAt = time.Time{}
	s.userID = ""
	s.userName = ""
}
