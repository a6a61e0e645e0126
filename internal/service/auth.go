package service

import (
	"context"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// AuthService logs in and manages the current user's credentials
type AuthService struct {
	api Doer
}

// Login exchanges credentials for an access token
func (s *AuthService) Login(ctx context.Context, credentials types.UserLogin) (*types.Token, error) {
	resp, err := s.api.Do(ctx, client.Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Body:     credentials,
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}

	var token types.Token
	if err := resp.Decode(&token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser returns the logged-in user's profile
func (s *AuthService) CurrentUser(ctx context.Context) (*types.UserProfile, error) {
	profile, err := get[types.UserProfile](ctx, s.api, "/user/me", nil)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword changes the logged-in user's password
func (s *AuthService) ChangePassword(ctx context.Context, req types.ChangePasswordRequest) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/user/change_password", Body: req}, http.StatusOK)
}
