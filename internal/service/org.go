package service

import (
	"context"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// OrgDashboard returns the per-org aggregate view; the adapter surfaces
// apierr.ErrNotFound when the org code is unknown.
func (s *Services) OrgDashboard(ctx context.Context, orgCode domain.GovOrgCode) (*repository.OrgDashboard, error) {
	return s.repo.OrgDashboard(ctx, orgCode)
}
