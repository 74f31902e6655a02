package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
)

// Calculator defines the landed-cost computation the service records.
type Calculator interface {
	Calculate(items []domain.LineItem, feePool domain.FeePool, basis domain.AllocationBasis, shipmentRate domain.ExchangeRate) (domain.CostSummary, error)
}

// Service computes landed costs and records them for audit.
type Service struct {
	calc Calculator
	repo Repository
}

// NewService creates a new ledger Service.
func NewService(calc Calculator, repo Repository) *Service {
	return &Service{calc: calc, repo: repo}
}

// Record runs a calculation for a shipment and stores the resulting summary
// under the given date (normalized to a calendar day by the schema). The
// summary is returned even though it is also persisted; the stored copy is
// audit data, not the source of truth.
func (s *Service) Record(ctx context.Context, shipmentRef string, date time.Time, items []domain.LineItem, feePool domain.FeePool, basis domain.AllocationBasis, rate domain.ExchangeRate) (domain.CostSummary, error) {
	summary, err := s.calc.Calculate(items, feePool, basis, rate)
	if err != nil {
		return domain.CostSummary{}, fmt.Errorf("calculating landed cost for %s: %w", shipmentRef, err)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return domain.CostSummary{}, fmt.Errorf("marshaling summary for %s: %w", shipmentRef, err)
	}

	if err := s.repo.Save(ctx, shipmentRef, date, data); err != nil {
		return domain.CostSummary{}, fmt.Errorf("recording calculation for %s: %w", shipmentRef, err)
	}

	return summary, nil
}

// GetLatest retrieves the most recent calculation for a shipment.
func (s *Service) GetLatest(ctx context.Context, shipmentRef string) (*Record, error) {
	return s.repo.GetLatest(ctx, shipmentRef)
}

// List retrieves recent calculations across all shipments.
func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	return s.repo.List(ctx, limit)
}
