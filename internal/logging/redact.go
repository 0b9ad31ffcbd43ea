package logging

import (
	"log/slog"
	"sort"
	"strings"
)

// RedactedValue is the canonical placeholder for fields outside the
// allow-list.
const RedactedValue = "[REDACTED]"

var redactionAllowlist = map[string]struct{}{
	"service":    {},
	"route":      {},
	"method":     {},
	"status":     {},
	"requestId":  {},
	"latencyMs":  {},
	"error":      {},
	"class":      {},
	"timestamp":  {},
	"severity":   {},
	"message":    {},
}

// IsAllowlisted reports whether key may be logged without redaction.
func IsAllowlisted(key string) bool {
	_, ok := redactionAllowlist[strings.TrimSpace(key)]
	return ok
}

// RedactionAllowlist returns a sorted copy of the allow-listed keys.
func RedactionAllowlist() []string {
	keys := make([]string, 0, len(redactionAllowlist))
	for k := range redactionAllowlist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MaskField redacts value unless key is allow-listed. Used for every log
// attribute that might carry request-path data; national identifiers never
// appear in logs except as a keyed hash or the last four digits, so callers
// pass LastFour(id) rather than the raw id.
func MaskField(key, value string) slog.Attr {
	if strings.TrimSpace(value) == "" || IsAllowlisted(key) {
		return slog.String(key, value)
	}
	return slog.String(key, RedactedValue)
}

// LastFour returns the final four characters of id, or the whole string if
// shorter — the one plain-form fragment a national identifier is permitted
// to carry in logs.
func LastFour(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}
