package money

import (
    "golang.org/x/text/currency"
    "golang.org/x/text/language"
    "golang.org/x/text/message"
)

// Formatter renders order totals in a localized currency format.
type Formatter struct {
    printer *message.Printer
}

func NewFormatter(locale string) *Formatter {
    tag, err := language.Parse(locale)
    if err != nil {
        tag = language.AmericanEnglish
    }
    return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders an amount in minor units (cents) with its currency symbol,
// e.g. Format(18450, "USD") -> "$184.50". Unknown codes fall back to USD.
func (f *Formatter) Format(cents int64, code string) string {
    unit, err := currency.ParseISO(code)
    if err != nil {
        unit = currency.USD
    }
    amount := unit.Amount(float64(cents) / 100)
    return f.printer.Sprint(currency.Symbol(amount))
}
