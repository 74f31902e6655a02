package costing

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

// summarize folds per-item results into shipment grand totals. Totals are
// sums of the already-rounded per-item values, so the footer always matches
// the table.
func summarize(results []domain.ItemCostResult, currency domain.CurrencyCode) domain.CostSummary {
	sum := func(pick func(domain.ItemCostResult) domain.Money) domain.Money {
		amount := lo.Reduce(results, func(acc decimal.Decimal, r domain.ItemCostResult, _ int) decimal.Decimal {
			return acc.Add(pick(r).Amount)
		}, decimal.Zero)
		return domain.NewMoney(amount, currency)
	}

	goods := sum(func(r domain.ItemCostResult) domain.Money { return r.GoodsValueLocal })
	dutyTotal := sum(func(r domain.ItemCostResult) domain.Money { return r.DutyLocal })
	vat := sum(func(r domain.ItemCostResult) domain.Money { return r.VATLocal })
	fees := sum(func(r domain.ItemCostResult) domain.Money { return r.FeeShare })
	grand := sum(func(r domain.ItemCostResult) domain.Money { return r.TotalCost })

	return domain.CostSummary{
		Currency:   currency,
		Items:      results,
		GoodsTotal: goods,
		DutyTotal:  dutyTotal,
		VATTotal:   vat,
		FeeTotal:   fees,
		GrandTotal: grand,
	}
}
