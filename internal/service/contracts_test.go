package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/ruleengine"
)

func TestContractsFiltersBySupplierID(t *testing.T) {
	id := testCompanyID(t)
	repo := &stubRepo{contracts: []domain.Contract{{SupplierID: id, OrgCode: "ORG-1"}}}
	svc := New(Config{Repo: repo, Strawman: ruleengine.DefaultStrawmanConfig(), Now: fixedClock})

	out, err := svc.Contracts(context.Background(), &id, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, domain.GovOrgCode("ORG-1"), out[0].OrgCode)
}
