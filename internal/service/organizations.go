package service

import (
	"context"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// OrganizationService manages partner organizations
type OrganizationService struct {
	api Doer
}

// List returns every organization
func (s *OrganizationService) List(ctx context.Context) ([]types.OrganizationShortView, error) {
	return get[[]types.OrganizationShortView](ctx, s.api, "/organization/organizations_list", nil)
}

// Get returns one organization
func (s *OrganizationService) Get(ctx context.Context, orgID int) (*types.Organization, error) {
	org, err := get[types.Organization](ctx, s.api, "/organization/organization_details", map[string]any{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Create creates an organization
func (s *OrganizationService) Create(ctx context.Context, org types.OrganizationCreate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/organization/create_organization", Body: org}, http.StatusCreated)
}

// Update applies a partial update
func (s *OrganizationService) Update(ctx context.Context, org types.OrganizationUpdate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/organization/organization_update", Body: org}, http.StatusOK)
}
