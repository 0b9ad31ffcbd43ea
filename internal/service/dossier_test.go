package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/apierr"
	"supplierwatch/internal/domain"
	"supplierwatch/internal/ruleengine"
)

func TestDossierAssemblesSupplierAndDerivesAlertsAndScore(t *testing.T) {
	id := testCompanyID(t)
	supplier := domain.Supplier{ID: id, LegalName: "Acme Ltda"}
	sanctionStart := fixedClock().AddDate(-1, 0, 0)
	repo := &stubRepo{
		supplier: &supplier,
		sanctions: []domain.Sanction{
			{SupplierID: id, Kind: domain.SanctionKindSuspended, Start: sanctionStart},
		},
		contracts: []domain.Contract{
			{SupplierID: id, OrgCode: "ORG-1", SigningDate: sanctionStart.AddDate(0, 1, 0)},
		},
	}
	svc := New(Config{
		Repo:       repo,
		Strawman:   ruleengine.DefaultStrawmanConfig(),
		Disclaimer: "informational only",
		Now:        fixedClock,
	})

	dossier, err := svc.Dossier(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Acme Ltda", dossier.Supplier.LegalName)
	require.Equal(t, "informational only", dossier.Disclaimer)
	require.NotEmpty(t, dossier.Alerts, "an active sanction with a contract must raise SANCTIONED_SUPPLIER_STILL_CONTRACTING")
}

func TestDossierNotFoundPropagatesErrNotFound(t *testing.T) {
	repo := &stubRepo{supplierErr: apierr.ErrNotFound}
	svc := New(Config{Repo: repo, Strawman: ruleengine.DefaultStrawmanConfig(), Now: fixedClock})

	_, err := svc.Dossier(context.Background(), testCompanyID(t))
	require.ErrorIs(t, err, apierr.ErrNotFound)
}
