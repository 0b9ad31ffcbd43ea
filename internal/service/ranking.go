package service

import (
	"context"

	"supplierwatch/internal/repository"
)

// Ranking returns supplier summaries ordered by score descending then
// total-contracted-value descending; the adapter query already orders this
// way, so this is a thin pass-through.
func (s *Services) Ranking(ctx context.Context, limit, offset int) ([]repository.SupplierSummary, error) {
	return s.repo.RankByScore(ctx, limit, offset)
}
