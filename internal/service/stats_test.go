package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/repository"
	"supplierwatch/internal/ruleengine"
)

func TestStatsPassesThroughRepositoryRollup(t *testing.T) {
	repo := &stubRepo{stats: repository.Stats{SupplierCount: 10, ContractCount: 20, AlertCount: 5}}
	svc := New(Config{Repo: repo, Strawman: ruleengine.DefaultStrawmanConfig(), Now: fixedClock})

	out, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(10), out.SupplierCount)
	require.Equal(t, int64(5), out.AlertCount)
}
