package allocation

import (
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

func itemQtyPrice(t *testing.T, id, qty, price string) domain.LineItem {
	t.Helper()
	li, err := domain.NewLineItem(id, dec(t, qty), sar(t, price), domain.ExemptDuty(), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return li
}

func shareSum(t *testing.T, res Result, currency domain.CurrencyCode) domain.Money {
	t.Helper()
	total := domain.Zero(currency)
	for _, s := range res.Shares {
		sum, err := total.Add(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		total = sum
	}
	return total
}

func TestAllocateEqual(t *testing.T) {
	items := []domain.LineItem{
		itemQtyPrice(t, "a", "1", "100"),
		itemQtyPrice(t, "b", "2", "100"),
		itemQtyPrice(t, "c", "3", "100"),
	}

	res, err := Allocate(sar(t, "900"), items, domain.BasisEqual, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, share := range res.Shares {
		if !share.Equal(sar(t, "300")) {
			t.Errorf("share[%d] = %s, want 300.00 SAR", i, share)
		}
	}
	if !res.Residual.IsZero() {
		t.Errorf("residual = %s, want zero", res.Residual)
	}
}

func TestAllocateByQuantity(t *testing.T) {
	items := []domain.LineItem{
		itemQtyPrice(t, "a", "1", "10"),
		itemQtyPrice(t, "b", "3", "10"),
	}

	res, err := Allocate(sar(t, "100"), items, domain.BasisByQuantity, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Shares[0].Equal(sar(t, "25")) {
		t.Errorf("share[0] = %s, want 25.00 SAR", res.Shares[0])
	}
	if !res.Shares[1].Equal(sar(t, "75")) {
		t.Errorf("share[1] = %s, want 75.00 SAR", res.Shares[1])
	}
}

func TestAllocateByValueConvertsCurrency(t *testing.T) {
	rate, err := domain.NewExchangeRate("USD", "SAR", dec(t, "4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	usdItem := func(id, qty, price string) domain.LineItem {
		li, err := domain.NewLineItem(id, dec(t, qty), domain.NewMoney(dec(t, price), "USD"), domain.ExemptDuty(), decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return li
	}
	items := []domain.LineItem{
		usdItem("a", "1", "100"), // 400 SAR
		usdItem("b", "1", "300"), // 1200 SAR
	}

	res, err := Allocate(sar(t, "80"), items, domain.BasisByValue, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Shares[0].Equal(sar(t, "20")) {
		t.Errorf("share[0] = %s, want 20.00 SAR", res.Shares[0])
	}
	if !res.Shares[1].Equal(sar(t, "60")) {
		t.Errorf("share[1] = %s, want 60.00 SAR", res.Shares[1])
	}
}

func TestAllocateByValueNoFalseResidual(t *testing.T) {
	// Naive shares 33.33 / 33.33 / 33.34 already sum to the pool; the
	// reconciliation step must not adjust anything.
	items := []domain.LineItem{
		itemQtyPrice(t, "a", "1", "33.33"),
		itemQtyPrice(t, "b", "1", "33.33"),
		itemQtyPrice(t, "c", "1", "33.34"),
	}

	res, err := Allocate(sar(t, "100"), items, domain.BasisByValue, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Shares[0].Equal(sar(t, "33.33")) {
		t.Errorf("share[0] = %s, want 33.33 SAR", res.Shares[0])
	}
	if !res.Shares[1].Equal(sar(t, "33.33")) {
		t.Errorf("share[1] = %s, want 33.33 SAR", res.Shares[1])
	}
	if !res.Shares[2].Equal(sar(t, "33.34")) {
		t.Errorf("share[2] = %s, want 33.34 SAR", res.Shares[2])
	}
	if !res.Residual.IsZero() {
		t.Errorf("residual = %s, want zero", res.Residual)
	}
}

func TestAllocateConservation(t *testing.T) {
	// Three equal weights cannot split 100.00 evenly; the drift must land on
	// exactly one share and the total must still match the pool.
	items := []domain.LineItem{
		itemQtyPrice(t, "a", "1", "10"),
		itemQtyPrice(t, "b", "1", "10"),
		itemQtyPrice(t, "c", "1", "10"),
	}

	for _, basis := range []domain.AllocationBasis{domain.BasisEqual, domain.BasisByQuantity, domain.BasisByValue} {
		t.Run(string(basis), func(t *testing.T) {
			res, err := Allocate(sar(t, "100"), items, basis, domain.IdentityRate("SAR"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			total := shareSum(t, res, "SAR")
			if !total.Equal(sar(t, "100")) {
				t.Errorf("sum of shares = %s, want 100.00 SAR", total)
			}
			// Residual of 100 - 3*33.33 = 0.01 goes to item "a" (tie-break lowest ID).
			if !res.Shares[0].Equal(sar(t, "33.34")) {
				t.Errorf("share[0] = %s, want 33.34 SAR", res.Shares[0])
			}
			if !res.Residual.Equal(sar(t, "0.01")) {
				t.Errorf("residual = %s, want 0.01 SAR", res.Residual)
			}
		})
	}
}

func TestAllocateResidualGoesToLargestWeight(t *testing.T) {
	items := []domain.LineItem{
		itemQtyPrice(t, "a", "1", "10"),
		itemQtyPrice(t, "b", "5", "10"),
		itemQtyPrice(t, "c", "1", "10"),
	}

	// 7 quantity units over 100.00: raw shares 14.2857.., 71.4285.., 14.2857..
	// round to 14.29 + 71.43 + 14.29 = 100.01, residual -0.01 lands on "b".
	res, err := Allocate(sar(t, "100"), items, domain.BasisByQuantity, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Shares[1].Equal(sar(t, "71.42")) {
		t.Errorf("share[1] = %s, want 71.42 SAR", res.Shares[1])
	}
	if !shareSum(t, res, "SAR").Equal(sar(t, "100")) {
		t.Errorf("sum of shares = %s, want 100.00 SAR", shareSum(t, res, "SAR"))
	}
	if !res.Residual.Equal(sar(t, "-0.01")) {
		t.Errorf("residual = %s, want -0.01 SAR", res.Residual)
	}
}

func TestAllocateZeroWeights(t *testing.T) {
	items := []domain.LineItem{
		itemQtyPrice(t, "a", "0", "10"),
		itemQtyPrice(t, "b", "0", "10"),
	}

	res, err := Allocate(sar(t, "500"), items, domain.BasisByQuantity, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, share := range res.Shares {
		if !share.IsZero() {
			t.Errorf("share[%d] = %s, want zero", i, share)
		}
	}
}

func TestAllocateZeroPool(t *testing.T) {
	items := []domain.LineItem{itemQtyPrice(t, "a", "2", "10")}

	res, err := Allocate(sar(t, "0"), items, domain.BasisEqual, domain.IdentityRate("SAR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Shares[0].IsZero() {
		t.Errorf("share = %s, want zero", res.Shares[0])
	}
}

func TestAllocateUnknownBasis(t *testing.T) {
	items := []domain.LineItem{itemQtyPrice(t, "a", "1", "10")}

	_, err := Allocate(sar(t, "10"), items, "volume", domain.IdentityRate("SAR"))
	if !errors.Is(err, domain.ErrUnknownBasis) {
		t.Errorf("error = %v, want ErrUnknownBasis", err)
	}
}
