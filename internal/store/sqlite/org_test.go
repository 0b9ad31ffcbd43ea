package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/apierr"
	"supplierwatch/internal/domain"
)

func TestOrgDashboardAggregatesTotalsAndTopSuppliers(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 92000001, "Supplier A")
	seedSupplier(t, s, 2, 92000002, "Supplier B")
	seedOrg(t, s, 1, "ORG-X")
	seedContract(t, s, 1, 1, 1, 100000, "2025-01-01")
	seedContract(t, s, 2, 2, 1, 200000, "2025-02-01")
	_, err = s.db.Exec(`INSERT INTO fact_score_indicator (supplier_key, kind, weight) VALUES (2, 'LOW_CAPITAL', 15)`)
	require.NoError(t, err)

	dash, err := s.OrgDashboard(context.Background(), "ORG-X")
	require.NoError(t, err)
	require.Equal(t, int64(2), dash.SupplierCount)
	require.Equal(t, int64(300000), dash.TotalContracted.Cents())
	require.Len(t, dash.TopSuppliers, 2)
	require.Equal(t, "Supplier B", dash.TopSuppliers[0].LegalName, "higher contract value ranks first")
}

func TestOrgDashboardTopSuppliersDoesNotFanOutAcrossIndicatorsAndContracts(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 93000001, "Fanned Out")
	seedOrg(t, s, 1, "ORG-Y")
	seedContract(t, s, 1, 1, 1, 100_00, "2025-01-01")
	seedContract(t, s, 2, 1, 1, 200_00, "2025-02-01")
	_, err = s.db.Exec(`INSERT INTO fact_score_indicator (supplier_key, kind, weight) VALUES (1, 'LOW_CAPITAL', 15), (1, 'RECENT_COMPANY', 10)`)
	require.NoError(t, err)

	dash, err := s.OrgDashboard(context.Background(), "ORG-Y")
	require.NoError(t, err)
	require.Len(t, dash.TopSuppliers, 1)
	require.Equal(t, 25, dash.TopSuppliers[0].ScoreTotal)
	require.Equal(t, int64(300_00), dash.TopSuppliers[0].TotalContractValue.Cents())
}

func TestOrgDashboardUnknownOrgReturnsNotFound(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.OrgDashboard(context.Background(), domain.GovOrgCode("NO-SUCH-ORG"))
	require.ErrorIs(t, err, apierr.ErrNotFound)
}
