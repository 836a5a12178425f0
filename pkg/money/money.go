// Package money holds the currency rounding policy shared by the catalog and
// the transaction recorder. Amounts are shopspring decimals end to end.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of fractional digits kept for currency.
const CurrencyPlaces int32 = 2

func init() {
	// Clients do arithmetic on amounts, so emit them as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundingMode selects how a half-way value is resolved.
type RoundingMode int

const (
	// HalfEven rounds ties to the nearest even digit (banker's rounding).
	HalfEven RoundingMode = iota
	// HalfUp rounds ties away from zero.
	HalfUp
)

// ParseRoundingMode maps a configuration value to a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "half_even", "":
		return HalfEven, nil
	case "half_up":
		return HalfUp, nil
	}
	return HalfEven, fmt.Errorf("unknown rounding mode %q", s)
}

func (m RoundingMode) String() string {
	if m == HalfUp {
		return "half_up"
	}
	return "half_even"
}

// Round rounds d to currency precision.
func (m RoundingMode) Round(d decimal.Decimal) decimal.Decimal {
	if m == HalfUp {
		return d.Round(CurrencyPlaces)
	}
	return d.RoundBank(CurrencyPlaces)
}

// LineTax returns price * quantity * percent / 100 rounded to currency precision.
func (m RoundingMode) LineTax(price decimal.Decimal, quantity int, percent decimal.Decimal) decimal.Decimal {
	raw := price.Mul(decimal.NewFromInt(int64(quantity))).Mul(percent).Div(decimal.NewFromInt(100))
	return m.Round(raw)
}

// RateKey formats a tax percent as a summary key, always with two decimals.
func RateKey(percent decimal.Decimal) string {
	return percent.StringFixed(CurrencyPlaces)
}
