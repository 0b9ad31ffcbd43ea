package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/domain"
)

func TestDonationsForJoinsDirectAndPartnerDonations(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	id := seedSupplier(t, s, 1, 97000001, "Donor Co")
	_, err = s.db.Exec(`INSERT INTO dim_candidate (candidate_key, name, party, office, org_alignment)
		VALUES (1, 'Candidate A', 'Party X', 'Mayor', 'ORG-Z')`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO fact_donation
		(supplier_key, partner_key, candidate_key, amount_cents, election_year, resource_type)
		VALUES (1, NULL, 1, 10000, 2022, 'DIRECT')`)
	require.NoError(t, err)

	_, err = s.db.Exec(`INSERT INTO dim_partner (partner_key, person_hash, name) VALUES (1, 'hash-c', 'Partner Donor')`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO bridge_supplier_partner (supplier_key, partner_key) VALUES (1, 1)`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO fact_donation
		(supplier_key, partner_key, candidate_key, amount_cents, election_year, resource_type)
		VALUES (NULL, 1, 1, 20000, 2022, 'THROUGH_PARTNER')`)
	require.NoError(t, err)

	donations, err := s.DonationsFor(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, donations, 2)

	var directFound, partnerFound bool
	for _, d := range donations {
		if d.SupplierID != nil {
			directFound = true
		}
		if d.PartnerHash != nil {
			partnerFound = true
		}
		require.Equal(t, domain.GovOrgCode("ORG-Z"), d.PoliticalBodyAlignment)
	}
	require.True(t, directFound)
	require.True(t, partnerFound)
}
