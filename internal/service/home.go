package service

import (
	"context"

	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// HomeService serves the landing screen
type HomeService struct {
	api Doer
}

// Notifications returns the pending notices for the current user
func (s *HomeService) Notifications(ctx context.Context) (*types.Notifications, error) {
	n, err := get[types.Notifications](ctx, s.api, "/home/notifications", nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
