package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// Contracts implements repository.ContractRepository.
func (s *Store) Contracts(ctx context.Context, filter repository.ContractFilter, limit, offset int) ([]domain.Contract, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.SupplierID != nil {
		key, err := s.supplierKeyFor(ctx, *filter.SupplierID)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, "c.supplier_key = ?")
		args = append(args, key)
	}
	if filter.OrgCode != nil {
		key, err := s.orgKeyFor(ctx, *filter.OrgCode)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, "c.org_key = ?")
		args = append(args, key)
	}
	query := `
		SELECT s.company_id, o.org_code, c.value_cents, c.subject, c.tender_number, c.signing_date, c.valid_until
		FROM fact_contract c
		JOIN dim_supplier s ON s.supplier_key = c.supplier_key
		JOIN dim_gov_org o ON o.org_key = c.org_key`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY c.signing_date DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("query contracts", err)
	}
	defer rows.Close()

	var out []domain.Contract
	for rows.Next() {
		var companyID, orgCode, subject, tender string
		var signing, valid sql.NullString
		var valueCents int64
		if err := rows.Scan(&companyID, &orgCode, &valueCents, &subject, &tender, &signing, &valid); err != nil {
			return nil, wrapStoreErr("scan contract", err)
		}
		id, err := domain.NewCompanyId(companyID)
		if err != nil {
			return nil, wrapStoreErr("scan contract", err)
		}
		out = append(out, domain.Contract{
			SupplierID:   id,
			OrgCode:      domain.GovOrgCode(orgCode),
			Value:        moneyFromCents(valueCents),
			Subject:      subject,
			TenderNumber: domain.TenderNumber(tender),
			SigningDate:  parseDate(signing),
			ValidUntil:   parseDate(valid),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate contracts", err)
	}
	return out, nil
}

// contractsForSupplierKey is an internal helper shared by the rule-data and
// graph adapters, which already hold the surrogate key and would otherwise
// re-resolve it.
func (s *Store) contractsForSupplierKey(ctx context.Context, key int64) ([]domain.Contract, domain.CompanyId, error) {
	var companyID string
	if err := s.db.QueryRowContext(ctx, `SELECT company_id FROM dim_supplier WHERE supplier_key = ?`, key).Scan(&companyID); err != nil {
		return nil, domain.CompanyId{}, wrapStoreErr("resolve supplier for contracts", err)
	}
	id, err := domain.NewCompanyId(companyID)
	if err != nil {
		return nil, domain.CompanyId{}, wrapStoreErr("resolve supplier for contracts", err)
	}
	contracts, err := s.Contracts(ctx, repository.ContractFilter{SupplierID: &id}, 1000, 0)
	return contracts, id, err
}
