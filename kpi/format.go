package kpi

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// Formatter renders KPI values for display and export. The formatting
// rules are a contract shared with the exporters, so UI strings and file
// output stay byte-identical.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for a BCP47 locale tag and an ISO 4217
// currency code. Unknown values fall back to en-US / USD.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}
}

// FormatValue applies the display contract:
// currency → locale currency string, percentage → one decimal with %,
// decimal → two decimals, number → locale-grouped rounded integer.
func (f *Formatter) FormatValue(value float64, format model.KPIFormat) string {
	switch format {
	case model.FormatCurrency:
		return f.printer.Sprintf("%v", currency.NarrowSymbol(f.unit.Amount(value)))
	case model.FormatPercentage:
		return f.printer.Sprintf("%.1f%%", value)
	case model.FormatDecimal:
		return f.printer.Sprintf("%.2f", value)
	default:
		return f.printer.Sprintf("%v", number.Decimal(math.Round(value), number.MaxFractionDigits(0)))
	}
}

// FormatKPI renders a calculated KPI using its definition's format.
func (f *Formatter) FormatKPI(k model.CalculatedKPI) string {
	return f.FormatValue(k.Value, k.Definition.Format)
}
