package service

import (
	"context"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// RoleService manages role assignments
type RoleService struct {
	api Doer
}

// List returns every assignable role
func (s *RoleService) List(ctx context.Context) ([]types.Role, error) {
	return get[[]types.Role](ctx, s.api, "/roles/roles_list", nil)
}

// UserRoles returns the roles assigned to a user
func (s *RoleService) UserRoles(ctx context.Context, userID int) ([]types.UserRole, error) {
	return get[[]types.UserRole](ctx, s.api, "/roles/get_user_roles", map[string]any{"user_id": userID})
}

// Assign adds a role to a user
func (s *RoleService) Assign(ctx context.Context, userID, roleID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/roles/add_role_to_user",
		Body:   types.RoleAssignment{UserID: userID, RoleID: roleID},
	}, http.StatusOK)
}

// Revoke removes a role from a user
func (s *RoleService) Revoke(ctx context.Context, userID, roleID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodDelete,
		Path:   "/roles/remove_role_from_user",
		Body:   types.RoleAssignment{UserID: userID, RoleID: roleID},
	}, http.StatusOK)
}
