package sqlite

import (
	"context"
	"database/sql"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// PartnersOf implements repository.PartnerRepository.
func (s *Store) PartnersOf(ctx context.Context, id domain.CompanyId) ([]domain.Partner, []domain.OwnershipLink, error) {
	key, err := s.supplierKeyFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.person_hash, p.name, p.is_public_servant, p.employing_body, p.is_sanctioned, p.gov_supplier_count,
		       b.qualification, b.entry_date, b.exit_date, b.capital_share_hundredths
		FROM dim_partner p
		JOIN bridge_supplier_partner b ON b.partner_key = p.partner_key
		WHERE b.supplier_key = ?`, key)
	if err != nil {
		return nil, nil, wrapStoreErr("query partners", err)
	}
	defer rows.Close()

	var partners []domain.Partner
	var links []domain.OwnershipLink
	for rows.Next() {
		var hash, name, qualification string
		var employingBody string
		var isPublicServant, isSanctioned int
		var govCount int
		var entry, exit sql.NullString
		var shareHundredths int32
		if err := rows.Scan(&hash, &name, &isPublicServant, &employingBody, &isSanctioned, &govCount,
			&qualification, &entry, &exit, &shareHundredths); err != nil {
			return nil, nil, wrapStoreErr("scan partner", err)
		}
		partners = append(partners, domain.Partner{
			PersonIDHash:     hash,
			Name:             name,
			Qualification:    qualification,
			IsPublicServant:  isPublicServant != 0,
			EmployingBody:    employingBody,
			IsSanctioned:     isSanctioned != 0,
			GovSupplierCount: govCount,
		})
		link := domain.OwnershipLink{
			SupplierID:    id,
			PartnerIDHash: hash,
			Qualification: qualification,
			EntryDate:     parseDate(entry),
			CapitalShare:  shareFromHundredths(shareHundredths),
		}
		if exit.Valid && exit.String != "" {
			d := parseDate(exit)
			link.ExitDate = &d
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapStoreErr("iterate partners", err)
	}
	return partners, links, nil
}

func shareFromHundredths(h int32) domain.Share {
	share, _ := domain.NewShare(float64(h) / 100)
	return share
}

// PartnerSignals implements repository.RuleDataRepository.
func (s *Store) PartnerSignals(ctx context.Context, id domain.CompanyId) ([]repository.PartnerSignalRow, error) {
	key, err := s.supplierKeyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.person_hash, p.age_years, p.has_prior_business, p.presumed_income_cents, p.gov_contract_total_cents
		FROM dim_partner p
		JOIN bridge_supplier_partner b ON b.partner_key = p.partner_key
		WHERE b.supplier_key = ?`, key)
	if err != nil {
		return nil, wrapStoreErr("query partner signals", err)
	}
	defer rows.Close()

	var out []repository.PartnerSignalRow
	for rows.Next() {
		var hash string
		var age sql.NullInt64
		var hasHistory sql.NullBool
		var income, govTotal sql.NullInt64
		if err := rows.Scan(&hash, &age, &hasHistory, &income, &govTotal); err != nil {
			return nil, wrapStoreErr("scan partner signal", err)
		}
		signal := repository.PartnerSignalRow{PersonHash: hash}
		if age.Valid {
			v := int(age.Int64)
			signal.AgeYears = &v
		}
		if hasHistory.Valid {
			v := hasHistory.Bool
			signal.HasPriorBusinessHistory = &v
		}
		if income.Valid {
			m := moneyFromCents(income.Int64)
			signal.PresumedAnnualIncome = &m
		}
		if govTotal.Valid {
			m := moneyFromCents(govTotal.Int64)
			signal.GovContractTotal = &m
		}
		out = append(out, signal)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate partner signals", err)
	}
	return out, nil
}
