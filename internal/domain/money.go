package domain

import (
	"errors"
	"fmt"
)

// ErrNegativeMoney is returned when a Money amount would be negative.
var ErrNegativeMoney = errors.New("domain: money must be non-negative")

// ErrShareOutOfRange is returned when a Share falls outside [0, 100].
var ErrShareOutOfRange = errors.New("domain: share must be in [0, 100]")

// Money is a non-negative fixed-point decimal with exactly two fractional
// digits, stored as an integer count of cents so arithmetic never drifts
// through binary floating point.
type Money struct {
	cents int64
}

// NewMoney constructs a Money from whole currency units and cents.
func NewMoney(units int64, cents int64) (Money, error) {
	if units < 0 || cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	total := units*100 + cents
	if total < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: total}, nil
}

// MoneyFromCents constructs a Money directly from a cent count, as stored in
// the analytical store.
func MoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// Cents returns the exact integer cent value.
func (m Money) Cents() int64 { return m.cents }

// Add returns the exact sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool { return m.cents > other.cents }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.cents == 0 }

// String renders the canonical "123.45" two-decimal form.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// MarshalJSON encodes Money as a decimal string so downstream consumers never
// round-trip it through a binary float.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a "123.45"-style decimal string back into Money.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var units, cents int64
	if _, err := fmt.Sscanf(s, "%d.%d", &units, &cents); err != nil {
		return fmt.Errorf("domain: parse money %q: %w", s, err)
	}
	parsed, err := NewMoney(units, cents)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Share is a decimal in [0, 100] representing a capital-ownership
// percentage, stored as hundredths of a percentage point.
type Share struct {
	hundredths int32
}

// NewShare constructs a Share from a percentage value with up to two
// fractional digits.
func NewShare(percent float64) (Share, error) {
	if percent < 0 || percent > 100 {
		return Share{}, ErrShareOutOfRange
	}
	return Share{hundredths: int32(percent*100 + 0.5)}, nil
}

// Percent returns the share as a float percentage, e.g. 33.33.
func (s Share) Percent() float64 { return float64(s.hundredths) / 100 }
