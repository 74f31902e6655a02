package domain

import "fmt"

// FeeCharge is one named shared charge applied to a whole shipment, such as
// handling, ground transport, or miscellaneous port costs.
type FeeCharge struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// FeePool is the ordered set of shared charges to be prorated across line
// items. Entries must already be expressed in the shipment's local currency;
// converting foreign-currency fees is the caller's responsibility.
type FeePool []FeeCharge

// Total sums the pool in the given local currency. An entry in any other
// currency fails the whole call.
func (p FeePool) Total(currency CurrencyCode) (Money, error) {
	total := Zero(currency)
	for _, charge := range p {
		if charge.Amount.Currency != currency {
			return Money{}, fmt.Errorf("fee %q is in %s, pool currency is %s: %w",
				charge.Name, charge.Amount.Currency, currency, ErrCurrencyMismatch)
		}
		sum, err := total.Add(charge.Amount)
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}
