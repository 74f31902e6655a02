// Package report projects a CostSummary into presentation rows. It carries
// no business rules; every number is already decided upstream.
package report

import (
	"github.com/samber/lo"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

// Row is one formatted line-item entry. All amounts are fixed to two
// decimal places in the shipment's local currency.
type Row struct {
	ItemID     string `json:"itemId"`
	GoodsValue string `json:"goodsValue"`
	Duty       string `json:"duty"`
	VAT        string `json:"vat"`
	FeeShare   string `json:"feeShare"`
	TotalCost  string `json:"totalCost"`
	UnitCost   string `json:"unitCost"`
}

// Footer holds the formatted grand totals.
type Footer struct {
	GoodsTotal          string `json:"goodsTotal"`
	DutyTotal           string `json:"dutyTotal"`
	VATTotal            string `json:"vatTotal"`
	FeeTotal            string `json:"feeTotal"`
	GrandTotal          string `json:"grandTotal"`
	ReconciliationDelta string `json:"reconciliationDelta"`
}

// Report is the table shape consumed by presentation layers.
type Report struct {
	Currency string `json:"currency"`
	Rows     []Row  `json:"rows"`
	Footer   Footer `json:"footer"`
}

// Assemble builds a Report from a CostSummary.
func Assemble(summary domain.CostSummary) Report {
	rows := lo.Map(summary.Items, func(r domain.ItemCostResult, _ int) Row {
		return Row{
			ItemID:     r.ItemID,
			GoodsValue: fixed(r.GoodsValueLocal),
			Duty:       fixed(r.DutyLocal),
			VAT:        fixed(r.VATLocal),
			FeeShare:   fixed(r.FeeShare),
			TotalCost:  fixed(r.TotalCost),
			UnitCost:   fixed(r.UnitCost),
		}
	})

	return Report{
		Currency: string(summary.Currency),
		Rows:     rows,
		Footer: Footer{
			GoodsTotal:          fixed(summary.GoodsTotal),
			DutyTotal:           fixed(summary.DutyTotal),
			VATTotal:            fixed(summary.VATTotal),
			FeeTotal:            fixed(summary.FeeTotal),
			GrandTotal:          fixed(summary.GrandTotal),
			ReconciliationDelta: fixed(summary.ReconciliationDelta),
		},
	}
}

func fixed(m domain.Money) string {
	return m.Amount.StringFixed(2)
}
