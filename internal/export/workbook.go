package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Alialhaj1/SLMS-sub009/internal/report"
)

// WorkbookWriter implements SheetWriter by writing an .xlsx file to disk.
type WorkbookWriter struct {
	path string
}

// NewWorkbookWriter creates a WorkbookWriter that writes to the given path.
func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{path: path}
}

// Write creates the workbook and fills the calculations sheet.
func (w *WorkbookWriter) Write(_ context.Context, rows []SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", calcSheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	for i, values := range buildCalcValues(rows) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}
		if err := f.SetSheetRow(calcSheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteShipmentReport writes a single assembled report as an .xlsx workbook,
// one row per line item plus a totals footer.
func WriteShipmentReport(path, shipmentRef string, rep report.Report) error {
	const sheet = "LANDED_COST"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	rows := [][]any{
		{"Shipment", shipmentRef, "Currency", rep.Currency},
		{},
		{"Item", "Goods", "Duty", "VAT", "Fee Share", "Total", "Unit Cost"},
	}
	for _, r := range rep.Rows {
		rows = append(rows, []any{r.ItemID, r.GoodsValue, r.Duty, r.VAT, r.FeeShare, r.TotalCost, r.UnitCost})
	}
	rows = append(rows,
		[]any{},
		[]any{"Totals", rep.Footer.GoodsTotal, rep.Footer.DutyTotal, rep.Footer.VATTotal, rep.Footer.FeeTotal, rep.Footer.GrandTotal, ""},
		[]any{"Delta", rep.Footer.ReconciliationDelta},
	)

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
