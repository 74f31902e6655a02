package domain

// ItemCostResult holds the landed cost of one line item in the shipment's
// local currency. All amounts are presentation-rounded; the row is internally
// consistent (goods + duty + fee share == total cost exactly).
//
// VAT is tracked separately and excluded from the landed cost: it is a
// recoverable tax, not a cost component.
type ItemCostResult struct {
	ItemID          string `json:"itemId"`
	GoodsValueLocal Money  `json:"goodsValueLocal"`
	DutyLocal       Money  `json:"dutyLocal"`
	VATLocal        Money  `json:"vatLocal"`
	FeeShare        Money  `json:"feeShare"`
	TotalCost       Money  `json:"totalCost"`
	UnitCost        Money  `json:"unitCost"`
}

// CostSummary aggregates a whole calculation. It is a pure projection of its
// inputs: constructed fresh per request, never authoritative state, always
// recomputable.
type CostSummary struct {
	Currency CurrencyCode     `json:"currency"`
	Items    []ItemCostResult `json:"items"`

	GoodsTotal Money `json:"goodsTotal"`
	DutyTotal  Money `json:"dutyTotal"`
	VATTotal   Money `json:"vatTotal"`
	FeeTotal   Money `json:"feeTotal"`
	// GrandTotal is goods + duty + fees. VAT excluded.
	GrandTotal Money `json:"grandTotal"`

	// ReconciliationDelta is the rounding residual the fee allocation
	// absorbed so that the allocated shares sum to the rounded pool total.
	// Surfaced for audit; zero when independent rounding already reconciled.
	ReconciliationDelta Money `json:"reconciliationDelta"`
}
