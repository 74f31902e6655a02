package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExchangeRate converts Money from one currency to another. Directional: a
// USD->SAR rate does not convert SAR->USD.
type ExchangeRate struct {
	From CurrencyCode    `json:"from"`
	To   CurrencyCode    `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// NewExchangeRate validates and constructs an exchange rate.
// A rate of 1 is a valid no-op; anything <= 0 is rejected.
func NewExchangeRate(from, to CurrencyCode, rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("rate %s for %s->%s: %w", rate, from, to, ErrInvalidRate)
	}
	return ExchangeRate{From: from, To: to, Rate: rate}, nil
}

// IdentityRate returns the no-op rate for a single currency.
func IdentityRate(currency CurrencyCode) ExchangeRate {
	return ExchangeRate{From: currency, To: currency, Rate: decimal.NewFromInt(1)}
}

// Convert translates m into the rate's target currency.
//
// Money already in the target currency passes through unchanged regardless of
// the numeric rate value: base-currency shipments skip conversion entirely,
// so a stray non-1 rate supplied for the base currency must not corrupt them.
func (r ExchangeRate) Convert(m Money) (Money, error) {
	if m.Currency == r.To {
		return m, nil
	}
	if m.Currency != r.From {
		return Money{}, fmt.Errorf("converting %s with %s->%s rate: %w", m.Currency, r.From, r.To, ErrCurrencyMismatch)
	}
	if !r.Rate.IsPositive() {
		return Money{}, fmt.Errorf("rate %s for %s->%s: %w", r.Rate, r.From, r.To, ErrInvalidRate)
	}
	return Money{Amount: m.Amount.Mul(r.Rate), Currency: r.To}, nil
}
