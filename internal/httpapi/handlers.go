// Package httpapi wires the service layer to HTTP routes, handling request
// validation, response encoding, and error-class-to-status mapping.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"supplierwatch/internal/apierr"
	"supplierwatch/internal/domain"
	"supplierwatch/internal/service"
)

type handlers struct {
	svc *service.Services
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func parsePaging(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return limit, offset
}

func validPaging(limit, offset int) bool {
	return limit >= 1 && limit <= 100 && offset >= 0
}

func (h *handlers) supplierByID(w http.ResponseWriter, r *http.Request) {
	id, err := domain.NewCompanyId(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	dossier, err := h.svc.Dossier(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, dossier)
}

func (h *handlers) ranking(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	if !validPaging(limit, offset) {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	rows, err := h.svc.Ranking(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *handlers) supplierGraph(w http.ResponseWriter, r *http.Request) {
	id, err := domain.NewCompanyId(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	view, err := h.svc.Graph(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, view)
}

func (h *handlers) supplierExport(w http.ResponseWriter, r *http.Request) {
	id, err := domain.NewCompanyId(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	format := service.ExportFormat(r.URL.Query().Get("format"))
	switch format {
	case service.ExportJSON, service.ExportCSV, service.ExportPDF:
	default:
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	dossier, err := h.svc.Dossier(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := service.Export(dossier, format)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", payload.ContentType)
	w.Write(payload.Body)
}

func (h *handlers) alerts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	if !validPaging(limit, offset) {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	rows, err := h.svc.AlertFeed(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *handlers) alertsByKind(w http.ResponseWriter, r *http.Request) {
	kind := domain.AlertKind(chi.URLParam(r, "kind"))
	valid := false
	for _, k := range domain.AllAlertKinds {
		if k == kind {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	limit, offset := parsePaging(r)
	if !validPaging(limit, offset) {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	rows, err := h.svc.AlertFeedByKind(r.Context(), kind, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 1 || len(q) > 200 {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	limit, _ := parsePaging(r)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *handlers) contracts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	if !validPaging(limit, offset) {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	var supplierID *domain.CompanyId
	if v := r.URL.Query().Get("id"); v != "" {
		id, err := domain.NewCompanyId(v)
		if err != nil {
			writeError(w, apierr.ErrInputInvalid)
			return
		}
		supplierID = &id
	}
	var orgCode *domain.GovOrgCode
	if v := r.URL.Query().Get("orgCode"); v != "" {
		org := domain.GovOrgCode(v)
		orgCode = &org
	}
	rows, err := h.svc.Contracts(r.Context(), supplierID, orgCode, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (h *handlers) orgDashboard(w http.ResponseWriter, r *http.Request) {
	orgCode := domain.GovOrgCode(chi.URLParam(r, "orgCode"))
	if orgCode == "" {
		writeError(w, apierr.ErrInputInvalid)
		return
	}
	dashboard, err := h.svc.OrgDashboard(r.Context(), orgCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, dashboard)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	rollup, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rollup)
}
