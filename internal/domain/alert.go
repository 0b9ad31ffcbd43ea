package domain

import "time"

// CriticalAlert is a binary signal that a named suspicious condition holds.
// Evidence is a deterministic structured string naming the identifiers that
// triggered it, so a reviewer can trace the claim back to source rows.
type CriticalAlert struct {
	Kind        AlertKind
	Severity    Severity
	Description string
	Evidence    string
	DetectedAt  time.Time
	// PartnerHash is set when the alert is specific to one partner; empty
	// otherwise. Used as half of the (kind, partner) de-duplication key.
	PartnerHash string
}

// dedupeKey returns the (kind, partner?) identity used to collapse
// duplicate alerts.
func (a CriticalAlert) dedupeKey() [2]string {
	return [2]string{string(a.Kind), a.PartnerHash}
}

// DedupeAlerts collapses duplicates across the same (kind, partner?) pair,
// keeping the first occurrence and preserving overall order.
func DedupeAlerts(alerts []CriticalAlert) []CriticalAlert {
	seen := make(map[[2]string]struct{}, len(alerts))
	out := make([]CriticalAlert, 0, len(alerts))
	for _, a := range alerts {
		key := a.dedupeKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
