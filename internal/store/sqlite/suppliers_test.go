package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/apierr"
	"supplierwatch/internal/domain"
)

func TestSupplierByIDReturnsFullRow(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	id := seedSupplier(t, s, 1, 30000001, "Acme Ltda")
	_, err = s.db.Exec(`UPDATE dim_supplier SET opening_date = '2020-01-15', capital_cents = 150000,
		primary_activity = '6201-5/01', address_street = 'Rua A', address_number = '10',
		cadastral_status = 'ACTIVE', employee_count = 5 WHERE supplier_key = 1`)
	require.NoError(t, err)

	supplier, err := s.SupplierByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Acme Ltda", supplier.LegalName)
	require.Equal(t, int64(150000), supplier.Capital.Cents())
	require.NotNil(t, supplier.EmployeeCount)
	require.Equal(t, 5, *supplier.EmployeeCount)
}

func TestSupplierByIDNotFoundMapsToErrNotFound(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	id, err := domain.NewCompanyId(validCNPJ(40000001))
	require.NoError(t, err)

	_, err = s.SupplierByID(context.Background(), id)
	require.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestSharedAddressElsewhereDetectsCollision(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	idA := seedSupplier(t, s, 1, 50000001, "Supplier A")
	seedSupplier(t, s, 2, 50000002, "Supplier B")
	_, err = s.db.Exec(`UPDATE dim_supplier SET address_street = 'Rua Comum', address_number = '1' WHERE supplier_key IN (1, 2)`)
	require.NoError(t, err)

	shared, err := s.SharedAddressElsewhere(context.Background(), idA)
	require.NoError(t, err)
	require.True(t, shared)

	idC := seedSupplier(t, s, 3, 50000003, "Supplier C")
	_, err = s.db.Exec(`UPDATE dim_supplier SET address_street = 'Rua Isolada', address_number = '99' WHERE supplier_key = 3`)
	require.NoError(t, err)
	shared, err = s.SharedAddressElsewhere(context.Background(), idC)
	require.NoError(t, err)
	require.False(t, shared)
}

func TestRankByScoreOrdersByScoreThenValue(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 60000001, "Low Score")
	seedSupplier(t, s, 2, 60000002, "High Score")
	_, err = s.db.Exec(`INSERT INTO fact_score_indicator (supplier_key, kind, weight) VALUES (2, 'LOW_CAPITAL', 15)`)
	require.NoError(t, err)

	summaries, err := s.RankByScore(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "High Score", summaries[0].LegalName)
	require.Equal(t, 15, summaries[0].ScoreTotal)
}

func TestRankByScoreDoesNotFanOutAcrossIndicatorsAndContracts(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 65000001, "Fanned Out")
	seedOrg(t, s, 1, "ORG-A")
	_, err = s.db.Exec(`INSERT INTO fact_score_indicator (supplier_key, kind, weight) VALUES (1, 'LOW_CAPITAL', 15), (1, 'RECENT_COMPANY', 10)`)
	require.NoError(t, err)
	seedContract(t, s, 1, 1, 1, 100_00, "2023-01-01")
	seedContract(t, s, 2, 1, 1, 200_00, "2023-02-01")

	summaries, err := s.RankByScore(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 25, summaries[0].ScoreTotal)
	require.Equal(t, int64(300_00), summaries[0].TotalContractValue.Cents())
}

func TestSearchByNameOrIDMatchesCaseInsensitiveSubstring(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 70000001, "Contoso Engenharia")

	results, err := s.SearchByNameOrID(context.Background(), "contoso", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Contoso Engenharia", results[0].LegalName)

	results, err = s.SearchByNameOrID(context.Background(), "nonexistent", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchByNameOrIDDoesNotFanOutAcrossIndicatorsAndContracts(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 75000001, "Fanned Search")
	seedOrg(t, s, 1, "ORG-A")
	_, err = s.db.Exec(`INSERT INTO fact_score_indicator (supplier_key, kind, weight) VALUES (1, 'LOW_CAPITAL', 15), (1, 'RECENT_COMPANY', 10)`)
	require.NoError(t, err)
	seedContract(t, s, 1, 1, 1, 100_00, "2023-01-01")
	seedContract(t, s, 2, 1, 1, 200_00, "2023-02-01")

	results, err := s.SearchByNameOrID(context.Background(), "fanned", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 25, results[0].ScoreTotal)
	require.Equal(t, int64(300_00), results[0].TotalContractValue.Cents())
}

func TestCountSuppliersCountsAllRows(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 80000001, "One")
	seedSupplier(t, s, 2, 80000002, "Two")

	n, err := s.CountSuppliers(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}
