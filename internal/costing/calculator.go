// Package costing orchestrates duty computation, fee allocation, and
// currency conversion into a per-item and aggregate landed cost.
package costing

import (
	"fmt"

	"github.com/Alialhaj1/SLMS-sub009/internal/allocation"
	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
	"github.com/Alialhaj1/SLMS-sub009/internal/duty"
)

// Calculator produces CostSummary values. Stateless and safe for concurrent
// use: every call is a deterministic function of its inputs.
type Calculator struct{}

// New creates a Calculator.
func New() *Calculator {
	return &Calculator{}
}

// Calculate computes the full landed cost for a shipment. Any currency
// mismatch or invalid rate aborts the whole call; no partial result is
// returned.
//
// Fee pool entries must already be in the shipment's local currency
// (shipmentRate.To); the calculator refuses to coerce them.
func (c *Calculator) Calculate(items []domain.LineItem, feePool domain.FeePool, basis domain.AllocationBasis, shipmentRate domain.ExchangeRate) (domain.CostSummary, error) {
	if !shipmentRate.Rate.IsPositive() {
		return domain.CostSummary{}, fmt.Errorf("shipment rate %s: %w", shipmentRate.Rate, domain.ErrInvalidRate)
	}
	local := shipmentRate.To

	poolTotal, err := feePool.Total(local)
	if err != nil {
		return domain.CostSummary{}, fmt.Errorf("totaling fee pool: %w", err)
	}

	alloc, err := allocation.Allocate(poolTotal, items, basis, shipmentRate)
	if err != nil {
		return domain.CostSummary{}, fmt.Errorf("allocating fees: %w", err)
	}

	results := make([]domain.ItemCostResult, len(items))
	for i, item := range items {
		goodsLocal, err := shipmentRate.Convert(item.TotalValue())
		if err != nil {
			return domain.CostSummary{}, fmt.Errorf("converting goods value of item %s: %w", item.ID, err)
		}

		dutyLocal, vatLocal, err := duty.Compute(item, shipmentRate)
		if err != nil {
			return domain.CostSummary{}, err
		}

		results[i], err = mergeItem(item, goodsLocal, dutyLocal, vatLocal, alloc.Shares[i])
		if err != nil {
			return domain.CostSummary{}, fmt.Errorf("merging costs of item %s: %w", item.ID, err)
		}
	}

	summary := summarize(results, local)
	summary.ReconciliationDelta = alloc.Residual
	return summary, nil
}

// mergeItem rounds each reported component at the boundary, then derives the
// total from the rounded components so every row is internally consistent.
func mergeItem(item domain.LineItem, goodsLocal, dutyLocal, vatLocal, feeShare domain.Money) (domain.ItemCostResult, error) {
	goods := goodsLocal.Round()
	dutyAmt := dutyLocal.Round()
	vat := vatLocal.Round()

	total, err := goods.Add(dutyAmt)
	if err != nil {
		return domain.ItemCostResult{}, err
	}
	total, err = total.Add(feeShare)
	if err != nil {
		return domain.ItemCostResult{}, err
	}

	// A zero-quantity line has no meaningful per-unit cost, but its absolute
	// cost (a fixed duty, an allocated fee) is still valid.
	unit := domain.Zero(total.Currency)
	if item.Quantity.IsPositive() {
		unit = domain.NewMoney(total.Amount.Div(item.Quantity), total.Currency).Round()
	}

	return domain.ItemCostResult{
		ItemID:          item.ID,
		GoodsValueLocal: goods,
		DutyLocal:       dutyAmt,
		VATLocal:        vat,
		FeeShare:        feeShare,
		TotalCost:       total,
		UnitCost:        unit,
	}, nil
}
