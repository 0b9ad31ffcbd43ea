package service

import (
	"context"

	"supplierwatch/internal/repository"
)

// Stats returns the headline counts plus per-source freshness metadata.
func (s *Services) Stats(ctx context.Context) (repository.Stats, error) {
	return s.repo.StatsRollup(ctx)
}
