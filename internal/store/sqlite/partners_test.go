package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartnersOfJoinsOwnershipLinks(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	id := seedSupplier(t, s, 1, 95000001, "Owned Co")
	_, err = s.db.Exec(`INSERT INTO dim_partner
		(partner_key, person_hash, name, is_public_servant, employing_body, is_sanctioned, gov_supplier_count,
		 age_years, has_prior_business, presumed_income_cents, gov_contract_total_cents)
		VALUES (1, 'hash-a', 'Jane Partner', 1, 'Ministry of X', 0, 3, 45, 1, 500000, 1000000)`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO bridge_supplier_partner
		(supplier_key, partner_key, qualification, entry_date, exit_date, capital_share_hundredths)
		VALUES (1, 1, 'SOCIO-ADMINISTRADOR', '2019-03-01', NULL, 5000)`)
	require.NoError(t, err)

	partners, links, err := s.PartnersOf(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, partners, 1)
	require.True(t, partners[0].IsPublicServant)
	require.Equal(t, "Ministry of X", partners[0].EmployingBody)
	require.Len(t, links, 1)
	require.Nil(t, links[0].ExitDate)
}

func TestPartnerSignalsSurfacesOptionalFields(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	id := seedSupplier(t, s, 1, 96000001, "Signal Co")
	_, err = s.db.Exec(`INSERT INTO dim_partner
		(partner_key, person_hash, name, age_years, has_prior_business, presumed_income_cents, gov_contract_total_cents)
		VALUES (1, 'hash-b', 'No Signals Partner', NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO bridge_supplier_partner (supplier_key, partner_key) VALUES (1, 1)`)
	require.NoError(t, err)

	signals, err := s.PartnerSignals(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	require.Nil(t, signals[0].AgeYears)
	require.Nil(t, signals[0].HasPriorBusinessHistory)
	require.Nil(t, signals[0].PresumedAnnualIncome)
	require.Nil(t, signals[0].GovContractTotal)
}
