package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"supplierwatch/internal/apierr"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps an apierr sentinel to a status code and a constant detail
// string. No internal detail, query text, or stack trace ever reaches the
// body.
func writeError(w http.ResponseWriter, err error) {
	status, detail := classify(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: detail})
}

func classify(err error) (int, string) {
	switch {
	case apierr.Is(err, apierr.ErrInputInvalid):
		return http.StatusUnprocessableEntity, "input invalid"
	case apierr.Is(err, apierr.ErrNotFound):
		return http.StatusNotFound, "not found"
	case apierr.Is(err, apierr.ErrUnimplemented):
		return http.StatusNotImplemented, "not implemented"
	case apierr.Is(err, apierr.ErrRateLimited):
		return http.StatusTooManyRequests, "rate limited"
	case apierr.Is(err, apierr.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
