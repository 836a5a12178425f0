package service

import (
	"github.com/sangkips/pos-api/pkg/money"
	"github.com/shopspring/decimal"
)

// TaxLine is one sold line as seen by the tax calculation.
type TaxLine struct {
	Price    decimal.Decimal
	Quantity int
	Percent  decimal.Decimal
}

// TaxSummary is the result of ComputeTaxSummary.
type TaxSummary struct {
	TotalTax decimal.Decimal
	// ByRate maps a percent formatted with two decimals ("10.00") to the tax
	// collected at that rate.
	ByRate map[string]decimal.Decimal
}

// ComputeTaxSummary rounds each line's tax before summing. Rounding the
// aggregate once gives different totals at half-cent boundaries.
func ComputeTaxSummary(lines []TaxLine, mode money.RoundingMode) TaxSummary {
	summary := TaxSummary{
		TotalTax: decimal.Zero,
		ByRate:   make(map[string]decimal.Decimal),
	}

	for _, line := range lines {
		tax := mode.LineTax(line.Price, line.Quantity, line.Percent)
		summary.TotalTax = summary.TotalTax.Add(tax)

		key := money.RateKey(line.Percent)
		if acc, ok := summary.ByRate[key]; ok {
			summary.ByRate[key] = acc.Add(tax)
		} else {
			summary.ByRate[key] = tax
		}
	}
	return summary
}
