package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
	"github.com/Alialhaj1/SLMS-sub009/internal/ledger"
)

// exportLimit caps how many recent calculations a single export publishes.
const exportLimit = 200

// SummaryRow holds one recorded calculation flattened for a spreadsheet.
type SummaryRow struct {
	ShipmentRef  string
	CalculatedAt time.Time
	Currency     string
	GoodsTotal   string
	DutyTotal    string
	VATTotal     string
	FeeTotal     string
	GrandTotal   string
	Delta        string
}

// SheetWriter writes summary rows to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, rows []SummaryRow) error
}

// RecordSource supplies recorded calculations to export.
type RecordSource interface {
	List(ctx context.Context, limit int) ([]ledger.Record, error)
}

// Service reads recent calculations and delegates writing to a SheetWriter.
type Service struct {
	records RecordSource
	writer  SheetWriter
}

// NewService creates a new export Service.
func NewService(records RecordSource, writer SheetWriter) *Service {
	return &Service{
		records: records,
		writer:  writer,
	}
}

// Export publishes the most recent calculations to the sheet.
// Implements worker.Exporter.
func (s *Service) Export(ctx context.Context) error {
	records, err := s.records.List(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("listing calculations for export: %w", err)
	}

	rows := lo.FilterMap(records, func(rec ledger.Record, _ int) (SummaryRow, bool) {
		var summary domain.CostSummary
		if err := json.Unmarshal(rec.Summary, &summary); err != nil {
			slog.Warn("export: skipping unreadable calculation", "shipment", rec.ShipmentRef, "error", err)
			return SummaryRow{}, false
		}
		return buildRow(rec, summary), true
	})

	return s.writer.Write(ctx, rows)
}

func buildRow(rec ledger.Record, summary domain.CostSummary) SummaryRow {
	return SummaryRow{
		ShipmentRef:  rec.ShipmentRef,
		CalculatedAt: rec.CalculatedAt,
		Currency:     string(summary.Currency),
		GoodsTotal:   summary.GoodsTotal.Amount.StringFixed(2),
		DutyTotal:    summary.DutyTotal.Amount.StringFixed(2),
		VATTotal:     summary.VATTotal.Amount.StringFixed(2),
		FeeTotal:     summary.FeeTotal.Amount.StringFixed(2),
		GrandTotal:   summary.GrandTotal.Amount.StringFixed(2),
		Delta:        summary.ReconciliationDelta.Amount.StringFixed(2),
	}
}
