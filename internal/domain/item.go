package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one row of a customs declaration. Quantities and prices are
// validated at construction; a LineItem that exists is safe to calculate on.
type LineItem struct {
	ID        string          `json:"id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice Money           `json:"unitPrice"`
	Duty      DutyPolicy      `json:"duty"`
	VATRate   decimal.Decimal `json:"vatRate"`
}

// NewLineItem validates and constructs a line item. Quantity and unit price
// must be non-negative, and the VAT rate must lie within [0, 100].
func NewLineItem(id string, quantity decimal.Decimal, unitPrice Money, duty DutyPolicy, vatRate decimal.Decimal) (LineItem, error) {
	if quantity.IsNegative() {
		return LineItem{}, fmt.Errorf("item %s quantity %s: %w", id, quantity, ErrNegativeQuantityOrPrice)
	}
	if unitPrice.IsNegative() {
		return LineItem{}, fmt.Errorf("item %s unit price %s: %w", id, unitPrice, ErrNegativeQuantityOrPrice)
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(100)) {
		return LineItem{}, fmt.Errorf("item %s VAT rate %s out of [0,100]: %w", id, vatRate, ErrInvalidRate)
	}
	return LineItem{
		ID:        id,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Duty:      duty,
		VATRate:   vatRate,
	}, nil
}

// TotalValue is quantity * unit price in the item's own currency. Always
// recomputed from the inputs, never stored, so it cannot drift.
func (li LineItem) TotalValue() Money {
	return li.UnitPrice.Mul(li.Quantity)
}
