package sqlite

import (
	"context"

	"supplierwatch/internal/domain"
)

// supplierKeyFor resolves a CompanyId to its internal surrogate key.
// Returns a wrapped apierr.ErrNotFound when the supplier does not exist —
// the one place every per-supplier query below funnels through so a
// missing seed always reports not-found rather than an empty result set.
func (s *Store) supplierKeyFor(ctx context.Context, id domain.CompanyId) (int64, error) {
	var key int64
	row := s.db.QueryRowContext(ctx, `SELECT supplier_key FROM dim_supplier WHERE company_id = ?`, id.String())
	if err := row.Scan(&key); err != nil {
		return 0, wrapStoreErr("resolve supplier key", err)
	}
	return key, nil
}

func (s *Store) orgKeyFor(ctx context.Context, orgCode domain.GovOrgCode) (int64, error) {
	var key int64
	row := s.db.QueryRowContext(ctx, `SELECT org_key FROM dim_gov_org WHERE org_code = ?`, string(orgCode))
	if err := row.Scan(&key); err != nil {
		return 0, wrapStoreErr("resolve org key", err)
	}
	return key, nil
}
