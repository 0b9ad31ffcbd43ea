package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanctionsForReturnsOpenAndClosedSanctions(t *testing.T) {
	s, err := OpenFixture()
	require.NoError(t, err)
	defer s.Close()

	id := seedSupplier(t, s, 1, 94000001, "Sanctioned Co")
	_, err = s.db.Exec(`INSERT INTO fact_sanction
		(supplier_key, kind, sanctioning_body, reason, start_date, end_date)
		VALUES (1, 'SUSPENDED', 'CGU', 'irregularity', '2023-01-01', NULL)`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO fact_sanction
		(supplier_key, kind, sanctioning_body, reason, start_date, end_date)
		VALUES (1, 'ADMINISTRATIVE', 'TCU', 'expired matter', '2010-01-01', '2012-01-01')`)
	require.NoError(t, err)

	sanctions, err := s.SanctionsFor(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, sanctions, 2)

	var open, closed bool
	for _, sa := range sanctions {
		if sa.End == nil {
			open = true
		} else {
			closed = true
		}
	}
	require.True(t, open)
	require.True(t, closed)
}
