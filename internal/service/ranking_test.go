package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/repository"
	"supplierwatch/internal/ruleengine"
)

func TestRankingPassesThroughRepositoryOrder(t *testing.T) {
	repo := &stubRepo{ranking: []repository.SupplierSummary{
		{LegalName: "First"}, {LegalName: "Second"},
	}}
	svc := New(Config{Repo: repo, Strawman: ruleengine.DefaultStrawmanConfig(), Now: fixedClock})

	out, err := svc.Ranking(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"First", "Second"}, []string{out[0].LegalName, out[1].LegalName})
}
