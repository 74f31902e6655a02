package costing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func sar(t *testing.T, amount string) domain.Money {
	t.Helper()
	return domain.NewMoney(dec(t, amount), "SAR")
}

func pctItem(t *testing.T, id, qty, price, dutyRate, vatRate string) domain.LineItem {
	t.Helper()
	policy, err := domain.PercentageDuty(dec(t, dutyRate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	li, err := domain.NewLineItem(id, dec(t, qty), sar(t, price), policy, dec(t, vatRate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return li
}

// Equal-split sanity: 3 items qty [1,2,3] at 100 each, 5% duty, 15% VAT,
// 900 shared fees split equally at rate 1.
func TestCalculateEqualSplitScenario(t *testing.T) {
	items := []domain.LineItem{
		pctItem(t, "itm-1", "1", "100", "5", "15"),
		pctItem(t, "itm-2", "2", "100", "5", "15"),
		pctItem(t, "itm-3", "3", "100", "5", "15"),
	}
	pool := domain.FeePool{{Name: "handling", Amount: sar(t, "900")}}

	summary, err := New().Calculate(items, pool, domain.BasisEqual, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, r := range summary.Items {
		if !r.FeeShare.Equal(sar(t, "300")) {
			t.Errorf("item %d fee share = %s, want 300.00 SAR", i, r.FeeShare)
		}
	}

	third := summary.Items[2]
	if !third.GoodsValueLocal.Equal(sar(t, "300")) {
		t.Errorf("goods value = %s, want 300.00 SAR", third.GoodsValueLocal)
	}
	if !third.DutyLocal.Equal(sar(t, "15")) {
		t.Errorf("duty = %s, want 15.00 SAR", third.DutyLocal)
	}
	if !third.TotalCost.Equal(sar(t, "615")) {
		t.Errorf("total cost = %s, want 615.00 SAR", third.TotalCost)
	}
	if !third.UnitCost.Equal(sar(t, "205")) {
		t.Errorf("unit cost = %s, want 205.00 SAR", third.UnitCost)
	}
}

// Zero-quantity line with a fixed duty: absolute cost is still valid.
func TestCalculateZeroQuantityFixedDuty(t *testing.T) {
	fixed, err := domain.FixedDuty(sar(t, "20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := domain.NewLineItem("itm-1", decimal.Zero, sar(t, "50"), fixed, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := New().Calculate([]domain.LineItem{item}, domain.FeePool{}, domain.BasisEqual, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := summary.Items[0]
	if !r.GoodsValueLocal.IsZero() {
		t.Errorf("goods value = %s, want zero", r.GoodsValueLocal)
	}
	if !r.DutyLocal.Equal(sar(t, "20")) {
		t.Errorf("duty = %s, want 20.00 SAR", r.DutyLocal)
	}
	if !r.TotalCost.Equal(sar(t, "20")) {
		t.Errorf("total cost = %s, want 20.00 SAR", r.TotalCost)
	}
	if !r.UnitCost.IsZero() {
		t.Errorf("unit cost = %s, want zero", r.UnitCost)
	}
}

func TestCalculateMultiCurrency(t *testing.T) {
	rate, err := domain.NewExchangeRate("USD", "SAR", dec(t, "3.75"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	policy, err := domain.PercentageDuty(dec(t, "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := domain.NewLineItem("itm-1", dec(t, "2"), domain.NewMoney(dec(t, "100"), "USD"), policy, dec(t, "15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pool := domain.FeePool{{Name: "ground", Amount: sar(t, "50")}}

	summary, err := New().Calculate([]domain.LineItem{item}, pool, domain.BasisByValue, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := summary.Items[0]
	// 200 USD -> 750 SAR; duty 10% = 75; VAT 15% of 825 = 123.75
	if !r.GoodsValueLocal.Equal(sar(t, "750")) {
		t.Errorf("goods value = %s, want 750.00 SAR", r.GoodsValueLocal)
	}
	if !r.DutyLocal.Equal(sar(t, "75")) {
		t.Errorf("duty = %s, want 75.00 SAR", r.DutyLocal)
	}
	if !r.VATLocal.Equal(sar(t, "123.75")) {
		t.Errorf("vat = %s, want 123.75 SAR", r.VATLocal)
	}
	if !r.FeeShare.Equal(sar(t, "50")) {
		t.Errorf("fee share = %s, want 50.00 SAR", r.FeeShare)
	}
	// VAT excluded from landed cost.
	if !r.TotalCost.Equal(sar(t, "875")) {
		t.Errorf("total cost = %s, want 875.00 SAR", r.TotalCost)
	}
	if !r.UnitCost.Equal(sar(t, "437.5")) {
		t.Errorf("unit cost = %s, want 437.50 SAR", r.UnitCost)
	}
}

func TestCalculateGrandTotals(t *testing.T) {
	items := []domain.LineItem{
		pctItem(t, "itm-1", "1", "100", "5", "15"),
		pctItem(t, "itm-2", "2", "100", "5", "15"),
	}
	pool := domain.FeePool{
		{Name: "handling", Amount: sar(t, "60")},
		{Name: "other", Amount: sar(t, "40")},
	}

	summary, err := New().Calculate(items, pool, domain.BasisByValue, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.GoodsTotal.Equal(sar(t, "300")) {
		t.Errorf("goods total = %s, want 300.00 SAR", summary.GoodsTotal)
	}
	if !summary.DutyTotal.Equal(sar(t, "15")) {
		t.Errorf("duty total = %s, want 15.00 SAR", summary.DutyTotal)
	}
	if !summary.FeeTotal.Equal(sar(t, "100")) {
		t.Errorf("fee total = %s, want 100.00 SAR", summary.FeeTotal)
	}
	// grand = goods + duty + fees, VAT tracked separately
	if !summary.GrandTotal.Equal(sar(t, "415")) {
		t.Errorf("grand total = %s, want 415.00 SAR", summary.GrandTotal)
	}
	if !summary.VATTotal.Equal(sar(t, "47.25")) {
		t.Errorf("vat total = %s, want 47.25 SAR", summary.VATTotal)
	}
}

func TestCalculateFeePoolCurrencyMismatch(t *testing.T) {
	items := []domain.LineItem{pctItem(t, "itm-1", "1", "100", "0", "0")}
	pool := domain.FeePool{{Name: "freight", Amount: domain.NewMoney(dec(t, "75"), "USD")}}

	_, err := New().Calculate(items, pool, domain.BasisEqual, domain.IdentityRate("SAR"))
	if !errors.Is(err, domain.ErrCurrencyMismatch) {
		t.Errorf("error = %v, want ErrCurrencyMismatch", err)
	}
}

func TestCalculateInvalidRate(t *testing.T) {
	items := []domain.LineItem{pctItem(t, "itm-1", "1", "100", "0", "0")}
	badRate := domain.ExchangeRate{From: "USD", To: "SAR", Rate: decimal.Zero}

	_, err := New().Calculate(items, domain.FeePool{}, domain.BasisEqual, badRate)
	if !errors.Is(err, domain.ErrInvalidRate) {
		t.Errorf("error = %v, want ErrInvalidRate", err)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	items := []domain.LineItem{
		pctItem(t, "itm-1", "3", "33.33", "5", "15"),
		pctItem(t, "itm-2", "7", "19.99", "5", "15"),
	}
	pool := domain.FeePool{{Name: "handling", Amount: sar(t, "123.45")}}

	calc := New()
	first, err := calc.Calculate(items, pool, domain.BasisByQuantity, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := calc.Calculate(items, pool, domain.BasisByQuantity, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("summaries differ:\n%s\n%s", a, b)
	}
}

func TestCalculateRowConsistency(t *testing.T) {
	// goods + duty + fee share must equal total cost in every row, and the
	// fee column must sum to the rounded pool.
	items := []domain.LineItem{
		pctItem(t, "itm-1", "1", "10", "5", "15"),
		pctItem(t, "itm-2", "1", "10", "5", "15"),
		pctItem(t, "itm-3", "1", "10", "5", "15"),
	}
	pool := domain.FeePool{{Name: "handling", Amount: sar(t, "100")}}

	summary, err := New().Calculate(items, pool, domain.BasisEqual, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	feeSum := decimal.Zero
	for _, r := range summary.Items {
		rowSum := r.GoodsValueLocal.Amount.Add(r.DutyLocal.Amount).Add(r.FeeShare.Amount)
		if !rowSum.Equal(r.TotalCost.Amount) {
			t.Errorf("item %s: goods+duty+fee = %s, total = %s", r.ItemID, rowSum, r.TotalCost.Amount)
		}
		feeSum = feeSum.Add(r.FeeShare.Amount)
	}
	if !feeSum.Equal(dec(t, "100")) {
		t.Errorf("fee column sum = %s, want 100", feeSum)
	}
	if !summary.ReconciliationDelta.Equal(sar(t, "0.01")) {
		t.Errorf("reconciliation delta = %s, want 0.01 SAR", summary.ReconciliationDelta)
	}
}
