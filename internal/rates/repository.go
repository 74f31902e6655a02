package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

// ErrQuoteNotFound indicates no stored quote exists for a currency.
var ErrQuoteNotFound = errors.New("exchange quote not found")

// Quote is a stored foreign-currency-to-local rate with its refresh time.
type Quote struct {
	Currency    domain.CurrencyCode `json:"currency"`
	RateToLocal decimal.Decimal     `json:"rateToLocal"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// QuoteRepository defines persistent storage for exchange quotes.
type QuoteRepository interface {
	SaveQuote(ctx context.Context, currency domain.CurrencyCode, rateToLocal decimal.Decimal) error
	GetQuote(ctx context.Context, currency domain.CurrencyCode) (Quote, error)
	GetAllQuotes(ctx context.Context) ([]Quote, error)
}

// PgQuoteRepository implements QuoteRepository with PostgreSQL.
type PgQuoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgQuoteRepository creates a new PostgreSQL quote repository.
func NewPgQuoteRepository(pool *pgxpool.Pool) *PgQuoteRepository {
	return &PgQuoteRepository{pool: pool}
}

func (r *PgQuoteRepository) SaveQuote(ctx context.Context, currency domain.CurrencyCode, rateToLocal decimal.Decimal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO exchange_quotes (currency, rate_to_local, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (currency) DO UPDATE SET rate_to_local = $2, updated_at = NOW()`,
		currency, rateToLocal)
	if err != nil {
		return fmt.Errorf("saving quote for %s: %w", currency, err)
	}
	return nil
}

func (r *PgQuoteRepository) GetQuote(ctx context.Context, currency domain.CurrencyCode) (Quote, error) {
	var q Quote
	err := r.pool.QueryRow(ctx,
		`SELECT currency, rate_to_local, updated_at FROM exchange_quotes WHERE currency = $1`,
		currency).Scan(&q.Currency, &q.RateToLocal, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, fmt.Errorf("quote for %s: %w", currency, ErrQuoteNotFound)
		}
		return Quote{}, fmt.Errorf("getting quote for %s: %w", currency, err)
	}
	return q, nil
}

func (r *PgQuoteRepository) GetAllQuotes(ctx context.Context) ([]Quote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT currency, rate_to_local, updated_at FROM exchange_quotes ORDER BY currency`)
	if err != nil {
		return nil, fmt.Errorf("getting all quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.Currency, &q.RateToLocal, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
