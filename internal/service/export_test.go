package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"supplierwatch/internal/apierr"
	"supplierwatch/internal/domain"
)

func sampleDossier(t *testing.T) *Dossier {
	id := testCompanyID(t)
	return &Dossier{
		Supplier:   domain.Supplier{ID: id, LegalName: "Acme Ltda"},
		Contracts:  []domain.Contract{{SupplierID: id, OrgCode: "ORG-1", Subject: "road maintenance"}},
		Disclaimer: "informational only",
	}
}

func TestExportJSONRoundTripsDossierFields(t *testing.T) {
	payload, err := Export(sampleDossier(t), ExportJSON)
	require.NoError(t, err)
	require.Equal(t, "application/json", payload.ContentType)

	var decoded Dossier
	require.NoError(t, json.Unmarshal(payload.Body, &decoded))
	require.Equal(t, "Acme Ltda", decoded.Supplier.LegalName)
}

func TestExportCSVIncludesEverySection(t *testing.T) {
	payload, err := Export(sampleDossier(t), ExportCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", payload.ContentType)

	body := string(payload.Body)
	for _, section := range []string{"# cadastral", "# contracts", "# partners", "# sanctions", "# donations", "# alerts"} {
		require.True(t, strings.Contains(body, section), "missing section %q", section)
	}
	require.True(t, strings.Contains(body, "road maintenance"))
}

func TestExportPDFIsUnimplemented(t *testing.T) {
	_, err := Export(sampleDossier(t), ExportPDF)
	require.ErrorIs(t, err, apierr.ErrUnimplemented)
}

func TestExportUnknownFormatIsInputInvalid(t *testing.T) {
	_, err := Export(sampleDossier(t), ExportFormat("xml"))
	require.ErrorIs(t, err, apierr.ErrInputInvalid)
}
