package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"supplierwatch/internal/apierr"
)

// ExportFormat is the requested export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportPDF  ExportFormat = "pdf"
)

// ExportPayload carries the encoded bytes and the content type the HTTP
// layer should set.
type ExportPayload struct {
	ContentType string
	Body        []byte
}

// Export encodes a Dossier in the requested format. JSON returns the
// Dossier's canonical field order (the struct's own json tags); CSV
// produces a multi-section document; PDF is a deliberate stub returning
// apierr.ErrUnimplemented.
func Export(d *Dossier, format ExportFormat) (*ExportPayload, error) {
	switch format {
	case ExportJSON:
		return exportJSON(d)
	case ExportCSV:
		return exportCSV(d)
	case ExportPDF:
		return nil, apierr.ErrUnimplemented
	default:
		return nil, apierr.ErrInputInvalid
	}
}

func exportJSON(d *Dossier) (*ExportPayload, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return &ExportPayload{ContentType: "application/json", Body: body}, nil
}

func exportCSV(d *Dossier) (*ExportPayload, error) {
	var buf bytes.Buffer

	writeSection(&buf, "cadastral",
		[]string{"company_id", "legal_name", "opening_date", "capital", "primary_activity", "address_street", "address_number", "cadastral_status"},
		[][]string{{
			d.Supplier.ID.String(),
			d.Supplier.LegalName,
			formatDate(d.Supplier.OpeningDate),
			d.Supplier.Capital.String(),
			string(d.Supplier.PrimaryActivity),
			d.Supplier.AddressStreet,
			d.Supplier.AddressNumber,
			string(d.Supplier.CadastralStatus),
		}})

	contractRows := make([][]string, 0, len(d.Contracts))
	for _, c := range d.Contracts {
		contractRows = append(contractRows, []string{
			string(c.OrgCode), c.Value.String(), c.Subject, string(c.TenderNumber),
			formatDate(c.SigningDate), formatDate(c.ValidUntil),
		})
	}
	writeSection(&buf, "contracts", []string{"org_code", "value", "subject", "tender_number", "signing_date", "valid_until"}, contractRows)

	partnerRows := make([][]string, 0, len(d.Partners))
	for _, p := range d.Partners {
		partnerRows = append(partnerRows, []string{
			p.PersonIDHash, p.Name, p.Qualification, boolString(p.IsPublicServant), p.EmployingBody, boolString(p.IsSanctioned),
		})
	}
	writeSection(&buf, "partners", []string{"person_id_hash", "name", "qualification", "is_public_servant", "employing_body", "is_sanctioned"}, partnerRows)

	sanctionRows := make([][]string, 0, len(d.Sanctions))
	for _, sa := range d.Sanctions {
		end := ""
		if sa.End != nil {
			end = formatDate(*sa.End)
		}
		sanctionRows = append(sanctionRows, []string{
			string(sa.Kind), sa.SanctioningBody, sa.Reason, formatDate(sa.Start), end,
		})
	}
	writeSection(&buf, "sanctions", []string{"kind", "sanctioning_body", "reason", "start_date", "end_date"}, sanctionRows)

	donationRows := make([][]string, 0, len(d.Donations))
	for _, don := range d.Donations {
		donationRows = append(donationRows, []string{
			don.Candidate, don.Party, don.Office, don.Amount.String(), fmt.Sprintf("%d", don.ElectionYear), don.ResourceType,
		})
	}
	writeSection(&buf, "donations", []string{"candidate", "party", "office", "amount", "election_year", "resource_type"}, donationRows)

	alertRows := make([][]string, 0, len(d.Alerts))
	for _, a := range d.Alerts {
		alertRows = append(alertRows, []string{
			string(a.Kind), string(a.Severity), a.Description, a.Evidence, a.DetectedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeSection(&buf, "alerts", []string{"kind", "severity", "description", "evidence", "detected_at"}, alertRows)

	return &ExportPayload{ContentType: "text/csv", Body: buf.Bytes()}, nil
}

func writeSection(buf *bytes.Buffer, name string, header []string, rows [][]string) {
	fmt.Fprintf(buf, "# %s\n", name)
	w := csv.NewWriter(buf)
	w.Write(header)
	for _, row := range rows {
		w.Write(row)
	}
	w.Flush()
	buf.WriteString("\n")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
