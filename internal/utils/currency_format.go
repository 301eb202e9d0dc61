package utils

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyGrapheme is the symbol appended to formatted amounts.
const DefaultCurrencyGrapheme = "$US"

// AmountFormatter renders decimal amounts with two fraction digits,
// a space thousands separator, a comma decimal mark and a trailing currency symbol.
type AmountFormatter struct {
	f *money.Formatter
}

// NewAmountFormatter returns a formatter using grapheme as currency symbol.
func NewAmountFormatter(grapheme string) AmountFormatter {
	if grapheme == "" {
		grapheme = DefaultCurrencyGrapheme
	}
	return AmountFormatter{f: money.NewFormatter(2, ",", " ", grapheme, "1 $")}
}

// Format renders amount, e.g. 1234.5 as "1 234,50 $US" and -10 as "-10,00 $US".
// The sign comes from the unrounded amount, so -0.004 renders as "-0,00 $US".
func (af AmountFormatter) Format(amount decimal.Decimal) string {
	formatted := af.f.Format(amount.Abs().Round(2).Shift(2).IntPart())
	if amount.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// FormatSigned is Format with an explicit "+" for non-negative amounts.
func (af AmountFormatter) FormatSigned(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return af.Format(amount)
	}
	return "+" + af.Format(amount)
}

var defaultFormatter = NewAmountFormatter(DefaultCurrencyGrapheme)

// FormatAmount formats amount with the default currency symbol.
func FormatAmount(amount decimal.Decimal) string {
	return defaultFormatter.Format(amount)
}

// FormatSignedAmount formats amount with the default currency symbol and a leading sign.
func FormatSignedAmount(amount decimal.Decimal) string {
	return defaultFormatter.FormatSigned(amount)
}

// FormatDate renders t as DD/MM/YYYY, or "-" when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}
