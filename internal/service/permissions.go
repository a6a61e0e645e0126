package service

import "context"

// PermissionService reads the current user's grants
type PermissionService struct {
	api Doer
}

// MyPermissions returns the raw permission strings of the current user
func (s *PermissionService) MyPermissions(ctx context.Context) ([]string, error) {
	return get[[]string](ctx, s.api, "/user/my_permissions", nil)
}
