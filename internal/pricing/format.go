package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var plPrinter = message.NewPrinter(language.Polish)

// FormatAmount renders an amount with Polish digit grouping and exactly
// two decimal places, e.g. "12 345,67".
func FormatAmount(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return plPrinter.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatPLN renders an amount as a Polish currency string, e.g.
// "12 345,67 zł". This is the form embedded verbatim in contract
// documents.
func FormatPLN(v decimal.Decimal) string {
	return FormatAmount(v) + " zł"
}

var polishMonthsGenitive = [...]string{
	"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

// FormatDatePolish renders a date the way contract headers do,
// e.g. "16 lutego 2026 r.".
func FormatDatePolish(t time.Time) string {
	return fmt.Sprintf("%d %s %d r.", t.Day(), polishMonthsGenitive[t.Month()-1], t.Year())
}

// AmountInWords renders the simplified words clause used in the payment
// section, e.g. "34 000,00 zł (34000 zł 00/100)".
func AmountInWords(v decimal.Decimal) string {
	rounded := v.Round(2)
	parts := strings.SplitN(rounded.StringFixed(2), ".", 2)
	return fmt.Sprintf("%s (%s zł %s/100)", FormatPLN(rounded), parts[0], parts[1])
}
