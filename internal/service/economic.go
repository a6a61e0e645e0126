package service

import (
	"context"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// EconomicService manages economic movements and grant categories
type EconomicService struct {
	api Doer
}

// LastMovements returns the most recent movements
func (s *EconomicService) LastMovements(ctx context.Context) ([]types.EconomicMovement, error) {
	return get[[]types.EconomicMovement](ctx, s.api, "/economic_movement/get_last_economic_movements", nil)
}

// Movements returns the movements matching filters
func (s *EconomicService) Movements(ctx context.Context, filters types.EconomicMovementFilters) ([]types.EconomicMovement, error) {
	return get[[]types.EconomicMovement](ctx, s.api, "/economic_movement/economic_movements_list", filters.Query())
}

// Movement returns one movement
func (s *EconomicService) Movement(ctx context.Context, movementID int) (*types.EconomicMovement, error) {
	m, err := get[types.EconomicMovement](ctx, s.api, "/economic_movement/economic_movement_detail", map[string]any{"movement_id": movementID})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMovement creates a movement
func (s *EconomicService) CreateMovement(ctx context.Context, m types.EconomicMovementCreate) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/economic_movement/create_economic_movement",
		Body:   m,
	}, http.StatusCreated)
}

// UpdateMovement applies a partial update
func (s *EconomicService) UpdateMovement(ctx context.Context, movementID int, m types.EconomicMovementUpdate) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/economic_movement/update_economic_movement",
		Query:  map[string]any{"movement_id": movementID},
		Body:   m,
	}, http.StatusOK)
}

// DeleteMovement removes a movement
func (s *EconomicService) DeleteMovement(ctx context.Context, movementID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodDelete,
		Path:   "/economic_movement/delete_economic_movement",
		Query:  map[string]any{"movement_id": movementID},
	}, http.StatusOK)
}

// Categories returns the grant categories
func (s *EconomicService) Categories(ctx context.Context) ([]types.GrantCategory, error) {
	return get[[]types.GrantCategory](ctx, s.api, "/categories/categories_list", nil)
}
