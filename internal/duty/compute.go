// Package duty computes customs duty and VAT for a single declaration line.
package duty

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Compute returns the duty and VAT for one line item in the rate's target
// (local) currency. Matching over the duty policy is exhaustive; an
// unrecognized type is an error, never a silently-zero charge.
//
// The VAT base is goods value plus duty: duty is itself dutiable for VAT
// purposes. Exemption removes the duty, not the VAT.
func Compute(item domain.LineItem, rateToLocal domain.ExchangeRate) (dutyLocal, vatLocal domain.Money, err error) {
	goodsLocal, err := rateToLocal.Convert(item.TotalValue())
	if err != nil {
		return domain.Money{}, domain.Money{}, fmt.Errorf("converting goods value of item %s: %w", item.ID, err)
	}

	switch item.Duty.Type {
	case domain.DutyExempt:
		dutyLocal = domain.Zero(rateToLocal.To)
	case domain.DutyPercentage:
		dutyLocal = goodsLocal.Mul(item.Duty.Rate.Div(hundred))
	case domain.DutyFixed:
		// A flat per-declaration charge: applies even when quantity is zero.
		dutyLocal, err = rateToLocal.Convert(item.Duty.Amount)
		if err != nil {
			return domain.Money{}, domain.Money{}, fmt.Errorf("converting fixed duty of item %s: %w", item.ID, err)
		}
	default:
		return domain.Money{}, domain.Money{}, fmt.Errorf("item %s duty type %q: %w", item.ID, item.Duty.Type, domain.ErrUnknownDutyType)
	}

	vatBase, err := goodsLocal.Add(dutyLocal)
	if err != nil {
		return domain.Money{}, domain.Money{}, fmt.Errorf("building VAT base for item %s: %w", item.ID, err)
	}
	vatLocal = vatBase.Mul(item.VATRate.Div(hundred))

	return dutyLocal, vatLocal, nil
}
