package sqlite

import (
	"context"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

type orgTotalsRow struct {
	SupplierCount int64
	TotalCents    int64
}

type orgSummaryRow struct {
	CompanyID  string
	LegalName  string
	ScoreTotal int
	OrgValue   int64
}

// OrgDashboard implements repository.OrgRepository, aggregated with gorm
// raw-query rollups rather than hand-assembled database/sql scans.
func (s *Store) OrgDashboard(ctx context.Context, orgCode domain.GovOrgCode) (*repository.OrgDashboard, error) {
	orgKey, err := s.orgKeyFor(ctx, orgCode)
	if err != nil {
		return nil, err
	}

	var totals orgTotalsRow
	if err := s.gdb.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT c.supplier_key) AS supplier_count, COALESCE(SUM(c.value_cents), 0) AS total_cents
		FROM fact_contract c WHERE c.org_key = ?`, orgKey).Scan(&totals).Error; err != nil {
		return nil, wrapStoreErr("org dashboard totals", err)
	}

	var rows []orgSummaryRow
	if err := s.gdb.WithContext(ctx).Raw(`
		SELECT d.company_id AS company_id, d.legal_name AS legal_name,
		       COALESCE(i.score_total, 0) AS score_total,
		       SUM(c.value_cents) AS org_value
		FROM fact_contract c
		JOIN dim_supplier d ON d.supplier_key = c.supplier_key
		LEFT JOIN (
			SELECT supplier_key, SUM(weight) AS score_total
			FROM fact_score_indicator
			GROUP BY supplier_key
		) i ON i.supplier_key = d.supplier_key
		WHERE c.org_key = ?
		GROUP BY d.supplier_key
		ORDER BY org_value DESC
		LIMIT 10`, orgKey).Scan(&rows).Error; err != nil {
		return nil, wrapStoreErr("org dashboard top suppliers", err)
	}

	top := make([]repository.SupplierSummary, 0, len(rows))
	for _, r := range rows {
		id, err := domain.NewCompanyId(r.CompanyID)
		if err != nil {
			return nil, wrapStoreErr("org dashboard top suppliers", err)
		}
		top = append(top, repository.SupplierSummary{
			ID:                 id,
			LegalName:          r.LegalName,
			ScoreTotal:         r.ScoreTotal,
			Band:               domain.BandForScore(r.ScoreTotal),
			TotalContractValue: moneyFromCents(r.OrgValue),
		})
	}

	return &repository.OrgDashboard{
		OrgCode:         orgCode,
		SupplierCount:   totals.SupplierCount,
		TotalContracted: moneyFromCents(totals.TotalCents),
		TopSuppliers:    top,
	}, nil
}
