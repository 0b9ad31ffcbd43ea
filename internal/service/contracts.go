package service

import (
	"context"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// Contracts returns contract rows, optionally filtered by supplier or org.
func (s *Services) Contracts(ctx context.Context, supplierID *domain.CompanyId, orgCode *domain.GovOrgCode, limit, offset int) ([]domain.Contract, error) {
	return s.repo.Contracts(ctx, repository.ContractFilter{SupplierID: supplierID, OrgCode: orgCode}, limit, offset)
}
