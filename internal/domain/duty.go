package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DutyType discriminates the duty policy variants. HS-code tariff lookups
// (outside this package) decide which variant a line item carries.
type DutyType string

const (
	// DutyPercentage assesses duty as a percentage of the goods value.
	DutyPercentage DutyType = "percentage"
	// DutyFixed assesses a flat per-declaration charge independent of
	// quantity and value.
	DutyFixed DutyType = "fixed"
	// DutyExempt assesses no duty. VAT may still apply.
	DutyExempt DutyType = "exempt"
)

// DutyPolicy is a tagged variant: exactly one of Rate or Amount is meaningful
// depending on Type. Construct through PercentageDuty, FixedDuty, or
// ExemptDuty so a rate can never coexist with an exempt tag.
type DutyPolicy struct {
	Type   DutyType        `json:"type"`
	Rate   decimal.Decimal `json:"rate,omitzero"`
	Amount Money           `json:"amount,omitzero"`
}

// PercentageDuty builds a percentage policy. The rate is expressed in
// percent and must lie within [0, 100].
func PercentageDuty(rate decimal.Decimal) (DutyPolicy, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return DutyPolicy{}, fmt.Errorf("duty rate %s out of [0,100]: %w", rate, ErrInvalidRate)
	}
	return DutyPolicy{Type: DutyPercentage, Rate: rate}, nil
}

// FixedDuty builds a flat-amount policy. The amount may be in any currency;
// the computer converts it to the shipment's local currency.
func FixedDuty(amount Money) (DutyPolicy, error) {
	if amount.IsNegative() {
		return DutyPolicy{}, fmt.Errorf("fixed duty %s: %w", amount, ErrNegativeQuantityOrPrice)
	}
	return DutyPolicy{Type: DutyFixed, Amount: amount}, nil
}

// ExemptDuty builds the duty-free policy.
func ExemptDuty() DutyPolicy {
	return DutyPolicy{Type: DutyExempt}
}
