package service

import (
	"context"
	"strings"

	"supplierwatch/internal/repository"
)

// Search normalizes the query and delegates to the repository's combined
// identifier-or-name lookup. Normalization is trimming surrounding
// whitespace. Length validation (1 to 200 bytes) happens at the HTTP
// boundary — by the time a query reaches here it is already valid.
func (s *Services) Search(ctx context.Context, query string, limit int) ([]repository.SupplierSummary, error) {
	normalized := strings.TrimSpace(query)
	return s.repo.SearchByNameOrID(ctx, normalized, limit)
}
