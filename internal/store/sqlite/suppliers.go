package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

func parseDate(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func moneyFromCents(cents int64) domain.Money {
	m, _ := domain.MoneyFromCents(cents)
	return m
}

// SupplierByID implements repository.SupplierRepository.
func (s *Store) SupplierByID(ctx context.Context, id domain.CompanyId) (*domain.Supplier, error) {
	stmt, err := s.db.PrepareContext(ctx, `
		SELECT company_id, legal_name, opening_date, capital_cents, primary_activity,
		       address_street, address_number, cadastral_status, employee_count
		FROM dim_supplier WHERE company_id = ?`)
	if err != nil {
		return nil, wrapStoreErr("prepare supplier by id", err)
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, id.String())
	var (
		companyID, legalName, activity, street, number, cadastral string
		opening                                                   sql.NullString
		capitalCents                                              int64
		employeeCount                                              sql.NullInt64
	)
	if err := row.Scan(&companyID, &legalName, &opening, &capitalCents, &activity, &street, &number, &cadastral, &employeeCount); err != nil {
		return nil, wrapStoreErr("scan supplier by id", err)
	}
	supplier := &domain.Supplier{
		ID:              id,
		LegalName:       legalName,
		OpeningDate:     parseDate(opening),
		Capital:         moneyFromCents(capitalCents),
		PrimaryActivity: domain.CNAECode(activity),
		AddressStreet:   street,
		AddressNumber:   number,
		CadastralStatus: domain.CadastralStatus(cadastral),
	}
	if employeeCount.Valid {
		n := int(employeeCount.Int64)
		supplier.EmployeeCount = &n
	}
	return supplier, nil
}

// SharedAddressElsewhere implements repository.SupplierRepository: true when
// another supplier declares the same street and number.
func (s *Store) SharedAddressElsewhere(ctx context.Context, id domain.CompanyId) (bool, error) {
	var n int
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dim_supplier other
		JOIN dim_supplier self ON self.company_id = ?
		WHERE other.company_id != self.company_id
		  AND other.address_street = self.address_street
		  AND other.address_number = self.address_number
		  AND self.address_street != ''`, id.String())
	if err := row.Scan(&n); err != nil {
		return false, wrapStoreErr("shared address lookup", err)
	}
	return n > 0, nil
}

// RankByScore implements repository.SupplierRepository. The ranking score
// is the sum of the fact_score_indicator rows the ingestion pipeline
// materialized in the store, not a per-request rule-engine run; this query
// only aggregates what the store already carries.
func (s *Store) RankByScore(ctx context.Context, limit, offset int) ([]repository.SupplierSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.company_id, d.legal_name,
		       COALESCE(i.score_total, 0) AS score_total,
		       COALESCE(c.total_value, 0) AS total_value
		FROM dim_supplier d
		LEFT JOIN (
			SELECT supplier_key, SUM(weight) AS score_total
			FROM fact_score_indicator
			GROUP BY supplier_key
		) i ON i.supplier_key = d.supplier_key
		LEFT JOIN (
			SELECT supplier_key, SUM(value_cents) AS total_value
			FROM fact_contract
			GROUP BY supplier_key
		) c ON c.supplier_key = d.supplier_key
		ORDER BY score_total DESC, total_value DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, wrapStoreErr("rank by score", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SearchByNameOrID implements repository.SupplierRepository. One
// parameterized query matches rows whose company_id equals query exactly
// or whose legal name contains query case-insensitively; both kinds of
// match are ordered together by score and contracted value. Identifier
// prefixes are not matched, and identifier matches are not ranked ahead of
// name matches.
func (s *Store) SearchByNameOrID(ctx context.Context, query string, limit int) ([]repository.SupplierSummary, error) {
	like := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.company_id, d.legal_name,
		       COALESCE(i.score_total, 0) AS score_total,
		       COALESCE(c.total_value, 0) AS total_value
		FROM dim_supplier d
		LEFT JOIN (
			SELECT supplier_key, SUM(weight) AS score_total
			FROM fact_score_indicator
			GROUP BY supplier_key
		) i ON i.supplier_key = d.supplier_key
		LEFT JOIN (
			SELECT supplier_key, SUM(value_cents) AS total_value
			FROM fact_contract
			GROUP BY supplier_key
		) c ON c.supplier_key = d.supplier_key
		WHERE d.company_id = ? OR LOWER(d.legal_name) LIKE ?
		ORDER BY score_total DESC, total_value DESC
		LIMIT ?`, query, like, limit)
	if err != nil {
		return nil, wrapStoreErr("search suppliers", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// CountSuppliers implements repository.SupplierRepository.
func (s *Store) CountSuppliers(ctx context.Context) (int64, error) {
	var n int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dim_supplier`)
	if err := row.Scan(&n); err != nil {
		return 0, wrapStoreErr("count suppliers", err)
	}
	return n, nil
}

func scanSummaries(rows *sql.Rows) ([]repository.SupplierSummary, error) {
	var out []repository.SupplierSummary
	for rows.Next() {
		var companyID, legalName string
		var scoreTotal int
		var totalValueCents int64
		if err := rows.Scan(&companyID, &legalName, &scoreTotal, &totalValueCents); err != nil {
			return nil, wrapStoreErr("scan supplier summary", err)
		}
		id, err := domain.NewCompanyId(companyID)
		if err != nil {
			return nil, fmt.Errorf("scan supplier summary: stored id %q failed checksum: %w", companyID, err)
		}
		out = append(out, repository.SupplierSummary{
			ID:                 id,
			LegalName:          legalName,
			ScoreTotal:         scoreTotal,
			Band:               domain.BandForScore(scoreTotal),
			TotalContractValue: moneyFromCents(totalValueCents),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate supplier summaries", err)
	}
	return out, nil
}
