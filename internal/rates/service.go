package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

var one = decimal.NewFromInt(1)

// ErrStaleQuote indicates the stored quote is older than the configured
// threshold. The caller decides whether to refuse the calculation or refetch.
var ErrStaleQuote = errors.New("exchange quote is stale")

// Service refreshes and serves shipment exchange rates against a single
// local (declaration) currency.
type Service struct {
	client     *Client
	repo       QuoteRepository
	local      domain.CurrencyCode
	currencies []domain.CurrencyCode
	staleAfter time.Duration
}

// NewService creates a rate Service tracking the given foreign currencies
// against the local currency.
func NewService(client *Client, repo QuoteRepository, local domain.CurrencyCode, currencies []domain.CurrencyCode, staleAfter time.Duration) *Service {
	return &Service{
		client:     client,
		repo:       repo,
		local:      local,
		currencies: currencies,
		staleAfter: staleAfter,
	}
}

// FetchAndStoreQuotes fetches current rates from the FX API and upserts one
// quote per tracked currency.
//
// The API quotes local->foreign, so each stored rate-to-local is the
// reciprocal of the fetched value.
func (s *Service) FetchAndStoreQuotes(ctx context.Context) error {
	fetched, err := s.client.FetchRates(ctx, s.local, s.currencies)
	if err != nil {
		return fmt.Errorf("fetching FX rates: %w", err)
	}

	for currency, localToForeign := range fetched {
		if !localToForeign.IsPositive() {
			return fmt.Errorf("fetched rate %s for %s: %w", localToForeign, currency, domain.ErrInvalidRate)
		}
		rateToLocal := one.Div(localToForeign)
		if err := s.repo.SaveQuote(ctx, currency, rateToLocal); err != nil {
			return fmt.Errorf("storing quote for %s: %w", currency, err)
		}
	}

	return nil
}

// Rate returns the shipment rate converting the given currency into the
// local currency. The local currency itself yields an identity rate without
// touching storage. Quotes past the staleness threshold are refused.
func (s *Service) Rate(ctx context.Context, from domain.CurrencyCode) (domain.ExchangeRate, error) {
	if from == s.local {
		return domain.IdentityRate(s.local), nil
	}

	quote, err := s.repo.GetQuote(ctx, from)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	if s.staleAfter > 0 && time.Since(quote.UpdatedAt) > s.staleAfter {
		return domain.ExchangeRate{}, fmt.Errorf("quote for %s updated %s: %w",
			from, quote.UpdatedAt.UTC().Format(time.RFC3339), ErrStaleQuote)
	}

	return domain.NewExchangeRate(from, s.local, quote.RateToLocal)
}

// Quotes returns every stored quote, staleness included; listings show age
// rather than hide old entries.
func (s *Service) Quotes(ctx context.Context) ([]Quote, error) {
	return s.repo.GetAllQuotes(ctx)
}

// LocalCurrency returns the declaration currency this service serves.
func (s *Service) LocalCurrency() domain.CurrencyCode {
	return s.local
}
