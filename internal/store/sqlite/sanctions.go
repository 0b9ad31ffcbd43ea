package sqlite

import (
	"context"
	"database/sql"

	"supplierwatch/internal/domain"
)

// SanctionsFor implements repository.SanctionRepository.
func (s *Store) SanctionsFor(ctx context.Context, id domain.CompanyId) ([]domain.Sanction, error) {
	key, err := s.supplierKeyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, sanctioning_body, reason, start_date, end_date
		FROM fact_sanction WHERE supplier_key = ?`, key)
	if err != nil {
		return nil, wrapStoreErr("query sanctions", err)
	}
	defer rows.Close()

	var out []domain.Sanction
	for rows.Next() {
		var kind, body, reason string
		var start sql.NullString
		var end sql.NullString
		if err := rows.Scan(&kind, &body, &reason, &start, &end); err != nil {
			return nil, wrapStoreErr("scan sanction", err)
		}
		sanction := domain.Sanction{
			SupplierID:      id,
			Kind:            domain.SanctionKind(kind),
			SanctioningBody: body,
			Reason:          reason,
			Start:           parseDate(start),
		}
		if end.Valid && end.String != "" {
			d := parseDate(end)
			sanction.End = &d
		}
		out = append(out, sanction)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate sanctions", err)
	}
	return out, nil
}
