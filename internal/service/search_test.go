package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/repository"
	"supplierwatch/internal/ruleengine"
)

func TestSearchTrimsWhitespaceBeforeDelegating(t *testing.T) {
	repo := &stubRepo{searchResults: []repository.SupplierSummary{{LegalName: "Contoso"}}}
	svc := New(Config{Repo: repo, Strawman: ruleengine.DefaultStrawmanConfig(), Now: fixedClock})

	out, err := svc.Search(context.Background(), "  contoso  ", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Contoso", out[0].LegalName)
}
