package sqlite

import (
	"context"
	"database/sql"

	"supplierwatch/internal/domain"
)

// DonationsFor implements repository.DonationRepository.
func (s *Store) DonationsFor(ctx context.Context, id domain.CompanyId) ([]domain.Donation, error) {
	key, err := s.supplierKeyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.supplier_key, d.partner_key, c.name, c.party, c.office, c.org_alignment,
		       d.amount_cents, d.election_year, d.resource_type, p.person_hash
		FROM fact_donation d
		JOIN dim_candidate c ON c.candidate_key = d.candidate_key
		LEFT JOIN dim_partner p ON p.partner_key = d.partner_key
		WHERE d.supplier_key = ? OR d.partner_key IN (
			SELECT partner_key FROM bridge_supplier_partner WHERE supplier_key = ?
		)`, key, key)
	if err != nil {
		return nil, wrapStoreErr("query donations", err)
	}
	defer rows.Close()

	var out []domain.Donation
	for rows.Next() {
		var supplierKey sql.NullInt64
		var partnerKey sql.NullInt64
		var candidate, party, office, alignment, resourceType string
		var amountCents int64
		var electionYear int
		var personHash sql.NullString
		if err := rows.Scan(&supplierKey, &partnerKey, &candidate, &party, &office, &alignment,
			&amountCents, &electionYear, &resourceType, &personHash); err != nil {
			return nil, wrapStoreErr("scan donation", err)
		}
		donation := domain.Donation{
			Candidate:               candidate,
			Party:                   party,
			Office:                  office,
			Amount:                  moneyFromCents(amountCents),
			ElectionYear:            electionYear,
			ResourceType:            resourceType,
			PoliticalBodyAlignment:  domain.GovOrgCode(alignment),
		}
		if supplierKey.Valid {
			donation.SupplierID = &id
		}
		if personHash.Valid && personHash.String != "" {
			hash := personHash.String
			donation.PartnerHash = &hash
		}
		out = append(out, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate donations", err)
	}
	return out, nil
}
