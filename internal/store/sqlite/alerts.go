package sqlite

import (
	"context"
	"database/sql"
	"time"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// AlertFeed implements repository.AlertFeedRepository.
func (s *Store) AlertFeed(ctx context.Context, limit, offset int) ([]repository.AlertFeedItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.company_id, s.legal_name, a.kind, a.severity, a.description, a.evidence, a.detected_at, p.person_hash
		FROM fact_critical_alert a
		JOIN dim_supplier s ON s.supplier_key = a.supplier_key
		LEFT JOIN dim_partner p ON p.partner_key = a.partner_key
		ORDER BY a.detected_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, wrapStoreErr("query alert feed", err)
	}
	defer rows.Close()
	return scanAlertFeed(rows)
}

// AlertFeedByKind implements repository.AlertFeedRepository.
func (s *Store) AlertFeedByKind(ctx context.Context, kind domain.AlertKind, limit, offset int) ([]repository.AlertFeedItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.company_id, s.legal_name, a.kind, a.severity, a.description, a.evidence, a.detected_at, p.person_hash
		FROM fact_critical_alert a
		JOIN dim_supplier s ON s.supplier_key = a.supplier_key
		LEFT JOIN dim_partner p ON p.partner_key = a.partner_key
		WHERE a.kind = ?
		ORDER BY a.detected_at DESC
		LIMIT ? OFFSET ?`, string(kind), limit, offset)
	if err != nil {
		return nil, wrapStoreErr("query alert feed by kind", err)
	}
	defer rows.Close()
	return scanAlertFeed(rows)
}

func scanAlertFeed(rows *sql.Rows) ([]repository.AlertFeedItem, error) {
	var out []repository.AlertFeedItem
	for rows.Next() {
		var companyID, legalName, kind, severity, description, evidence, detectedAt string
		var partnerHash sql.NullString
		if err := rows.Scan(&companyID, &legalName, &kind, &severity, &description, &evidence, &detectedAt, &partnerHash); err != nil {
			return nil, wrapStoreErr("scan alert feed row", err)
		}
		id, err := domain.NewCompanyId(companyID)
		if err != nil {
			return nil, wrapStoreErr("scan alert feed row", err)
		}
		when, err := time.Parse(time.RFC3339, detectedAt)
		if err != nil {
			when, err = time.Parse("2006-01-02", detectedAt)
		}
		if err != nil {
			return nil, wrapStoreErr("parse alert detected_at", err)
		}
		alert := domain.CriticalAlert{
			Kind:        domain.AlertKind(kind),
			Severity:    domain.Severity(severity),
			Description: description,
			Evidence:    evidence,
			DetectedAt:  when,
		}
		if partnerHash.Valid {
			alert.PartnerHash = partnerHash.String
		}
		out = append(out, repository.AlertFeedItem{
			Alert:        alert,
			SupplierID:   id,
			SupplierName: legalName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate alert feed", err)
	}
	return out, nil
}
