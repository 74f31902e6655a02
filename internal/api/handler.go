package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
	"github.com/Alialhaj1/SLMS-sub009/internal/ledger"
	"github.com/Alialhaj1/SLMS-sub009/internal/rates"
)

// RateSource supplies shipment exchange rates when a request does not carry
// an explicit rate.
type RateSource interface {
	Rate(ctx context.Context, from domain.CurrencyCode) (domain.ExchangeRate, error)
	Quotes(ctx context.Context) ([]rates.Quote, error)
	LocalCurrency() domain.CurrencyCode
}

// Handler provides HTTP endpoints for the landed cost API.
type Handler struct {
	ledger *ledger.Service
	rates  RateSource
}

// NewHandler creates a new API handler.
func NewHandler(ledgerSvc *ledger.Service, rateSource RateSource) *Handler {
	return &Handler{ledger: ledgerSvc, rates: rateSource}
}

type dutyRequest struct {
	Type   string          `json:"type"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

type itemRequest struct {
	ID        string          `json:"id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Duty      dutyRequest     `json:"duty"`
	VATRate   decimal.Decimal `json:"vatRate"`
}

type feeRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type calculationRequest struct {
	ShipmentRef string           `json:"shipmentRef"`
	Currency    string           `json:"currency"`
	Basis       string           `json:"basis"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	Items       []itemRequest    `json:"items"`
	Fees        []feeRequest     `json:"fees"`
}

// Calculate handles POST /api/v1/calculations: computes the landed cost for
// a shipment, records it, and returns the summary.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ShipmentRef == "" {
		writeError(w, http.StatusBadRequest, "shipmentRef is required")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	basis, err := domain.ParseAllocationBasis(req.Basis)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shipmentCurrency := domain.CurrencyCode(req.Currency)
	rate, err := h.resolveRate(r, shipmentCurrency, req.Rate)
	if err != nil {
		writeRateError(w, err)
		return
	}

	items, err := buildItems(req.Items, shipmentCurrency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pool := buildFeePool(req.Fees, rate.To)

	summary, err := h.ledger.Record(r.Context(), req.ShipmentRef, time.Now().UTC(), items, pool, basis, rate)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to record calculation", "shipment", req.ShipmentRef, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetLatestCalculation handles GET /api/v1/calculations/latest?shipment=REF.
func (h *Handler) GetLatestCalculation(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("shipment")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "shipment query parameter is required")
		return
	}

	rec, err := h.ledger.GetLatest(r.Context(), ref)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no calculation found for shipment")
			return
		}
		slog.Error("failed to get latest calculation", "shipment", ref, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListCalculations handles GET /api/v1/calculations.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 500
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	records, err := h.ledger.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list calculations", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetRate handles GET /api/v1/rates/{currency}.
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	currency := domain.CurrencyCode(r.PathValue("currency"))
	if currency == "" {
		writeError(w, http.StatusBadRequest, "currency is required")
		return
	}

	rate, err := h.rates.Rate(r.Context(), currency)
	if err != nil {
		writeRateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// ListRates handles GET /api/v1/rates.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.rates.Quotes(r.Context())
	if err != nil {
		slog.Error("failed to list quotes", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

// resolveRate prefers an explicit request rate over the stored quote.
func (h *Handler) resolveRate(r *http.Request, currency domain.CurrencyCode, explicit *decimal.Decimal) (domain.ExchangeRate, error) {
	if explicit != nil {
		return domain.NewExchangeRate(currency, h.rates.LocalCurrency(), *explicit)
	}
	return h.rates.Rate(r.Context(), currency)
}

func buildItems(reqs []itemRequest, currency domain.CurrencyCode) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, len(reqs))
	for i, ir := range reqs {
		policy, err := buildDuty(ir.Duty, currency)
		if err != nil {
			return nil, err
		}
		item, err := domain.NewLineItem(ir.ID, ir.Quantity, domain.NewMoney(ir.UnitPrice, currency), policy, ir.VATRate)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func buildDuty(dr dutyRequest, currency domain.CurrencyCode) (domain.DutyPolicy, error) {
	switch domain.DutyType(dr.Type) {
	case domain.DutyPercentage:
		return domain.PercentageDuty(dr.Rate)
	case domain.DutyFixed:
		return domain.FixedDuty(domain.NewMoney(dr.Amount, currency))
	case domain.DutyExempt:
		return domain.ExemptDuty(), nil
	default:
		return domain.DutyPolicy{}, fmt.Errorf("duty type %q: %w", dr.Type, domain.ErrUnknownDutyType)
	}
}

func buildFeePool(reqs []feeRequest, local domain.CurrencyCode) domain.FeePool {
	pool := make(domain.FeePool, len(reqs))
	for i, fr := range reqs {
		pool[i] = domain.FeeCharge{Name: fr.Name, Amount: domain.NewMoney(fr.Amount, local)}
	}
	return pool
}

// isValidationError reports whether the failure is the caller's to fix.
func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrCurrencyMismatch) ||
		errors.Is(err, domain.ErrInvalidRate) ||
		errors.Is(err, domain.ErrNegativeQuantityOrPrice) ||
		errors.Is(err, domain.ErrUnknownDutyType) ||
		errors.Is(err, domain.ErrUnknownBasis)
}

func writeRateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rates.ErrQuoteNotFound):
		writeError(w, http.StatusBadGateway, "no exchange quote for currency")
	case errors.Is(err, rates.ErrStaleQuote):
		writeError(w, http.StatusBadGateway, "exchange quote is stale")
	case errors.Is(err, domain.ErrInvalidRate):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("failed to resolve rate", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
