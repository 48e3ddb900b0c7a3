package export

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const NotAvailable = "N/A"

// Formatter renders numbers for display. Undefined values (NaN, infinities)
// render as N/A.
type Formatter struct {
	currency string
}

func NewFormatter(currency string) Formatter {
	if money.GetCurrency(currency) == nil {
		currency = money.AUD
	}
	return Formatter{currency: currency}
}

func (f Formatter) Currency() string {
	return f.currency
}

// Money rounds v to the currency's minor unit.
func (f Formatter) Money(v float64) string {
	if undefined(v) {
		return NotAvailable
	}
	cur := money.GetCurrency(f.currency)
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	amount := decimal.NewFromFloat(v).Mul(factor).Round(0)
	return money.New(amount.IntPart(), f.currency).Display()
}

// Percent formats a value that is already a percentage.
func (f Formatter) Percent(v float64) string {
	if undefined(v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// Ratio formats a fraction as a percentage.
func (f Formatter) Ratio(v float64) string {
	if undefined(v) {
		return NotAvailable
	}
	return f.Percent(v * 100)
}

func (f Formatter) Number(v float64, places int32) string {
	if undefined(v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func undefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
