package service

import (
	"context"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// UserService manages staff and member accounts
type UserService struct {
	api Doer
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]types.UserShortView, error) {
	return get[[]types.UserShortView](ctx, s.api, "/user/users_list", nil)
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, userID int) (*types.UserDetail, error) {
	user, err := get[types.UserDetail](ctx, s.api, "/user/user_details", map[string]any{"user_request_id": userID})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a user
func (s *UserService) Create(ctx context.Context, user types.UserCreate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/user/create_user", Body: user}, http.StatusCreated)
}

// Update applies a partial update
func (s *UserService) Update(ctx context.Context, user types.UserUpdate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/user/user_update", Body: user}, http.StatusOK)
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, userID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodDelete,
		Path:   "/user/delete_user",
		Query:  map[string]any{"user_id_to_delete": userID},
	}, http.StatusOK)
}

// Deactivate marks a user inactive
func (s *UserService) Deactivate(ctx context.Context, userID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/user/deactivate_user",
		Query:  map[string]any{"user_id_to_deactivate": userID},
	}, http.StatusOK)
}

// Activate marks a user active again
func (s *UserService) Activate(ctx context.Context, userID int) error {
	return s.Update(ctx, types.UserUpdate{ID: userID, IndEstado: types.Ptr(types.UserStatusActiveID)})
}

// CreateLink requests a self-registration link
func (s *UserService) CreateLink(ctx context.Context) (map[string]string, error) {
	resp, err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/user/create_user_link"})
	if err != nil {
		return nil, err
	}

	var link map[string]string
	if err := resp.Decode(&link); err != nil {
		return nil, err
	}
	return link, nil
}
