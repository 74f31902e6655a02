package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/Alialhaj1/SLMS-sub009/internal/costing"
	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
	"github.com/Alialhaj1/SLMS-sub009/internal/export"
	"github.com/Alialhaj1/SLMS-sub009/internal/report"
)

// shipmentFile is the on-disk input for an offline calculation. It mirrors
// the API request body, except the rate is mandatory because there is no
// quote store to fall back on.
type shipmentFile struct {
	ShipmentRef string           `json:"shipmentRef"`
	Currency    string           `json:"currency"`
	Local       string           `json:"local"`
	Basis       string           `json:"basis"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	Items       []struct {
		ID        string          `json:"id"`
		Quantity  decimal.Decimal `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
		Duty      struct {
			Type   string          `json:"type"`
			Rate   decimal.Decimal `json:"rate"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"duty"`
		VATRate decimal.Decimal `json:"vatRate"`
	} `json:"items"`
	Fees []struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
	} `json:"fees"`
}

func main() {
	app := &cli.App{
		Name:  "costctl",
		Usage: "offline landed cost calculations",
		Commands: []*cli.Command{
			{
				Name:      "calculate",
				Usage:     "calculate landed costs for a shipment file",
				ArgsUsage: "<shipment.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "write the report as an .xlsx workbook instead of printing",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the raw summary as JSON",
					},
				},
				Action: runCalculate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCalculate(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: costctl calculate <shipment.json>", 1)
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("reading shipment file: %w", err)
	}

	var file shipmentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing shipment file: %w", err)
	}

	summary, err := calculate(file)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	rep := report.Assemble(summary)
	if out := c.String("out"); out != "" {
		if err := export.WriteShipmentReport(out, file.ShipmentRef, rep); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	}

	printReport(file.ShipmentRef, rep)
	return nil
}

func calculate(file shipmentFile) (domain.CostSummary, error) {
	basis, err := domain.ParseAllocationBasis(file.Basis)
	if err != nil {
		return domain.CostSummary{}, err
	}

	shipmentCurrency := domain.CurrencyCode(file.Currency)
	local := domain.CurrencyCode(file.Local)
	if local == "" {
		local = shipmentCurrency
	}

	var rate domain.ExchangeRate
	if file.Rate != nil {
		rate, err = domain.NewExchangeRate(shipmentCurrency, local, *file.Rate)
	} else if shipmentCurrency == local {
		rate = domain.IdentityRate(local)
	} else {
		return domain.CostSummary{}, fmt.Errorf("rate is required when currency %s differs from local %s", shipmentCurrency, local)
	}
	if err != nil {
		return domain.CostSummary{}, err
	}

	items := make([]domain.LineItem, len(file.Items))
	for i, it := range file.Items {
		var policy domain.DutyPolicy
		switch domain.DutyType(it.Duty.Type) {
		case domain.DutyPercentage:
			policy, err = domain.PercentageDuty(it.Duty.Rate)
		case domain.DutyFixed:
			policy, err = domain.FixedDuty(domain.NewMoney(it.Duty.Amount, shipmentCurrency))
		case domain.DutyExempt:
			policy = domain.ExemptDuty()
		default:
			err = fmt.Errorf("duty type %q: %w", it.Duty.Type, domain.ErrUnknownDutyType)
		}
		if err != nil {
			return domain.CostSummary{}, err
		}

		items[i], err = domain.NewLineItem(it.ID, it.Quantity, domain.NewMoney(it.UnitPrice, shipmentCurrency), policy, it.VATRate)
		if err != nil {
			return domain.CostSummary{}, err
		}
	}

	pool := make(domain.FeePool, len(file.Fees))
	for i, f := range file.Fees {
		pool[i] = domain.FeeCharge{Name: f.Name, Amount: domain.NewMoney(f.Amount, local)}
	}

	return costing.New().Calculate(items, pool, basis, rate)
}

func printReport(shipmentRef string, rep report.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Shipment %s (%s)\n\n", shipmentRef, rep.Currency)
	fmt.Fprintln(w, "ITEM\tGOODS\tDUTY\tVAT\tFEE SHARE\tTOTAL\tUNIT COST")
	for _, r := range rep.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ItemID, r.GoodsValue, r.Duty, r.VAT, r.FeeShare, r.TotalCost, r.UnitCost)
	}
	fmt.Fprintf(w, "\nTOTALS\t%s\t%s\t%s\t%s\t%s\t\n",
		rep.Footer.GoodsTotal, rep.Footer.DutyTotal, rep.Footer.VATTotal, rep.Footer.FeeTotal, rep.Footer.GrandTotal)
	fmt.Fprintf(w, "DELTA\t%s\n", rep.Footer.ReconciliationDelta)
	w.Flush()
}
