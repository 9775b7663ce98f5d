package lcoe

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// WriteLedgerCSV writes the per-year breakdown to path.
func WriteLedgerCSV(path string, ledger []YearRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteLedger(f, ledger)
}

// WriteLedger writes the per-year breakdown as CSV. Money columns are rounded to
// cents, energy to kWh precision.
func WriteLedger(out io.Writer, ledger []YearRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"year",
		"opex",
		"financing",
		"cash_flow",
		"discount_factor",
		"present_value",
		"energy_mwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Year),
			FormatMoney(r.Opex),
			FormatMoney(r.Financing),
			FormatMoney(r.CashFlow),
			strconv.FormatFloat(r.DiscountFactor, 'f', 6, 64),
			FormatMoney(r.PresentValue),
			FormatEnergy(r.EnergyMWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FormatMoney renders a currency amount with two decimals, half away from zero.
func FormatMoney(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

// FormatEnergy renders MWh with three decimals.
func FormatEnergy(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(3)
}

// RoundMoney rounds a currency amount to cents for display payloads.
func RoundMoney(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}
