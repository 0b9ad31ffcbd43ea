package service

import (
	"context"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// AlertFeed returns every materialized alert row, newest first.
func (s *Services) AlertFeed(ctx context.Context, limit, offset int) ([]repository.AlertFeedItem, error) {
	return s.repo.AlertFeed(ctx, limit, offset)
}

// AlertFeedByKind narrows the feed to one alert kind.
func (s *Services) AlertFeedByKind(ctx context.Context, kind domain.AlertKind, limit, offset int) ([]repository.AlertFeedItem, error) {
	return s.repo.AlertFeedByKind(ctx, kind, limit, offset)
}
