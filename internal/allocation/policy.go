// Package allocation distributes a shared fee pool across line items.
package allocation

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

// Result carries one fee share per input item, in input order, plus the
// rounding residual that was folded into the largest-weight share.
type Result struct {
	// Shares are presentation-rounded and sum exactly to the rounded pool.
	Shares []domain.Money
	// Residual is round(pool) - sum of independently rounded raw shares,
	// before reconciliation. Kept visible for audit.
	Residual domain.Money
}

// Allocate splits pool across items under the chosen basis. ByValue weights
// need item values in the pool's currency, so the shipment rate is required.
//
// A zero pool or all-zero weights is a defined no-allocation result, not a
// division-by-zero fault: every share is zero.
func Allocate(pool domain.Money, items []domain.LineItem, basis domain.AllocationBasis, rate domain.ExchangeRate) (Result, error) {
	weights, err := weigh(items, basis, rate)
	if err != nil {
		return Result{}, err
	}

	totalWeight := lo.Reduce(weights, func(acc, w decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(w)
	}, decimal.Zero)

	zeroes := func() Result {
		shares := make([]domain.Money, len(items))
		for i := range shares {
			shares[i] = domain.Zero(pool.Currency)
		}
		return Result{Shares: shares, Residual: domain.Zero(pool.Currency)}
	}
	if totalWeight.IsZero() || pool.IsZero() {
		return zeroes(), nil
	}

	// Full-precision shares, rounded only at the boundary.
	shares := make([]domain.Money, len(items))
	roundedSum := domain.Zero(pool.Currency)
	for i, w := range weights {
		share := pool.Mul(w.Div(totalWeight)).Round()
		shares[i] = share
		roundedSum, err = roundedSum.Add(share)
		if err != nil {
			return Result{}, err
		}
	}

	// Independent per-share rounding can drift a penny off the pool total.
	// Fold the residual into the largest-weight item (ties: lowest item ID)
	// so the allocated total never silently diverges from the pool.
	residual := pool.Round().Amount.Sub(roundedSum.Amount)
	if !residual.IsZero() {
		idx := residualTarget(items, weights)
		shares[idx] = domain.NewMoney(shares[idx].Amount.Add(residual), pool.Currency)
	}

	return Result{
		Shares:   shares,
		Residual: domain.NewMoney(residual, pool.Currency),
	}, nil
}

func weigh(items []domain.LineItem, basis domain.AllocationBasis, rate domain.ExchangeRate) ([]decimal.Decimal, error) {
	weights := make([]decimal.Decimal, len(items))
	for i, item := range items {
		switch basis {
		case domain.BasisByQuantity:
			weights[i] = item.Quantity
		case domain.BasisByValue:
			local, err := rate.Convert(item.TotalValue())
			if err != nil {
				return nil, fmt.Errorf("weighing item %s by value: %w", item.ID, err)
			}
			weights[i] = local.Amount
		case domain.BasisEqual:
			weights[i] = decimal.NewFromInt(1)
		default:
			return nil, fmt.Errorf("basis %q: %w", basis, domain.ErrUnknownBasis)
		}
	}
	return weights, nil
}

// residualTarget picks the index of the largest weight; among equal weights
// the lowest item ID wins, so reconciliation is deterministic.
func residualTarget(items []domain.LineItem, weights []decimal.Decimal) int {
	best := 0
	for i := 1; i < len(weights); i++ {
		switch weights[i].Cmp(weights[best]) {
		case 1:
			best = i
		case 0:
			if items[i].ID < items[best].ID {
				best = i
			}
		}
	}
	return best
}
