package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyCode is an ISO 4217 alpha code such as "USD" or "SAR".
type CurrencyCode string

// presentationScale is the number of fractional digits reported to consumers.
// Internal arithmetic always runs at full decimal precision; rounding to this
// scale happens only when a result crosses a reporting boundary.
const presentationScale = 2

// Money is an immutable fixed-precision amount tagged with its currency.
// Arithmetic between two Money values requires identical currencies;
// cross-currency operations must go through an ExchangeRate first.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency CurrencyCode    `json:"currency"`
}

// NewMoney constructs a Money value.
func NewMoney(amount decimal.Decimal, currency CurrencyCode) Money {
	return Money{Amount: amount, Currency: currency}
}

// MoneyFromString parses a decimal string into a Money value.
func MoneyFromString(value string, currency CurrencyCode) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// Zero returns the additive identity in the given currency.
func Zero(currency CurrencyCode) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other, failing when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("adding %s to %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Mul scales the amount by a dimensionless factor. The currency is unchanged.
func (m Money) Mul(scalar decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(scalar), Currency: m.Currency}
}

// Round returns the presentation value of m, rounded to 2 decimal places.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(presentationScale), Currency: m.Currency}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Equal reports whether two Money values have the same currency and
// numerically equal amounts.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// String formats the amount at presentation scale with its currency code.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(presentationScale), m.Currency)
}
