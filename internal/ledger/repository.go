// Package ledger keeps the audit trail of landed-cost calculations. A stored
// record is never authoritative: every summary is recomputable from its
// inputs, and a later calculation for the same shipment and day replaces the
// earlier one.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that no calculation record matched.
var ErrNotFound = errors.New("calculation not found")

// Record is one stored calculation result.
type Record struct {
	ID           int64           `json:"id"`
	ShipmentRef  string          `json:"shipmentRef"`
	CalculatedAt time.Time       `json:"calculatedAt"`
	Summary      json.RawMessage `json:"summary"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for calculation records.
type Repository interface {
	Save(ctx context.Context, shipmentRef string, date time.Time, summary json.RawMessage) error
	GetLatest(ctx context.Context, shipmentRef string) (*Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL calculation repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, shipmentRef string, date time.Time, summary json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cost_calculations (shipment_ref, calculated_at, summary)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (shipment_ref, calculated_at)
		 DO UPDATE SET summary = $3::jsonb`,
		shipmentRef, date, summary)
	if err != nil {
		return fmt.Errorf("saving calculation for %s: %w", shipmentRef, err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, shipmentRef string) (*Record, error) {
	var rec Record
	err := r.pool.QueryRow(ctx,
		`SELECT id, shipment_ref, calculated_at, summary, created_at
		 FROM cost_calculations
		 WHERE shipment_ref = $1
		 ORDER BY calculated_at DESC
		 LIMIT 1`, shipmentRef).Scan(&rec.ID, &rec.ShipmentRef, &rec.CalculatedAt, &rec.Summary, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest calculation for %s: %w", shipmentRef, err)
	}
	return &rec, nil
}

func (r *PgRepository) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, shipment_ref, calculated_at, summary, created_at
		 FROM cost_calculations
		 ORDER BY calculated_at DESC, id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing calculations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ShipmentRef, &rec.CalculatedAt, &rec.Summary, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning calculation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calculations: %w", err)
	}
	return records, nil
}
