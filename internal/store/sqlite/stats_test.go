package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsRollupCountsHeadlineTotals(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	seedSupplier(t, s, 1, 93000001, "Supplier A")
	seedOrg(t, s, 1, "ORG-Y")
	seedContract(t, s, 1, 1, 1, 50000, "2025-01-01")
	_, err = s.db.Exec(`INSERT INTO fact_critical_alert
		(supplier_key, kind, severity, description, evidence, detected_at)
		VALUES (1, 'STRAWMAN', 'MOST_SEVERE', 'desc', 'evid', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	stats, err := s.StatsRollup(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.SupplierCount)
	require.Equal(t, int64(1), stats.ContractCount)
	require.Equal(t, int64(1), stats.AlertCount)
}

func TestStatsRollupReportsNoSourcesWithoutParquetDir(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	stats, err := s.StatsRollup(context.Background())
	require.NoError(t, err)
	require.Empty(t, stats.Sources, "fixture store has no parquet directory configured")
}
