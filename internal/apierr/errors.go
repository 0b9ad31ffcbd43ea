// Package apierr defines the typed error taxonomy shared across layers. The
// domain and repository layers raise these sentinels (wrapped with
// fmt.Errorf("...: %w", ...) for internal context); services pass them
// through unchanged; the HTTP layer is the only place that maps them to a
// status code and a constant detail string.
package apierr

import "errors"

var (
	// ErrInputInvalid maps to 422: identifier checksum, enum out of range,
	// numeric bounds, query length.
	ErrInputInvalid = errors.New("input invalid")
	// ErrNotFound maps to 404: unknown supplier, unknown org.
	ErrNotFound = errors.New("not found")
	// ErrUnimplemented maps to 501: the PDF export stub.
	ErrUnimplemented = errors.New("not implemented")
	// ErrRateLimited maps to 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout maps to 504.
	ErrTimeout = errors.New("timeout")
	// ErrStore maps to 500: adapter failure, statement preparation
	// failure, row type mismatch, unexpected null.
	ErrStore = errors.New("store error")
)

// Is reports whether err wraps one of the sentinels above, for handlers
// that only need to branch on class.
func Is(err, class error) bool {
	return errors.Is(err, class)
}
