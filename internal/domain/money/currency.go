package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

// FormatMinorUnits renders amount (in minor units of code) for display.
// Known ISO currencies use their standard scale and digit grouping. Codes
// that are not ISO currencies pass the raw amount through with the code as a
// suffix, e.g. "1500 coins".
func FormatMinorUnits(amount int64, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return strconv.FormatInt(amount, 10) + " " + code
	}

	scale, _ := currency.Standard.Rounding(unit)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	// Exact split: float64 drops digits above 2^53 and -MinInt64 overflows.
	abs := decimal.NewFromInt(amount).Abs()
	whole, frac := abs.QuoRem(decimal.New(1, int32(scale)), 0)
	p := message.NewPrinter(language.English)
	digits := p.Sprint(number.Decimal(whole.BigInt().Uint64()))
	if scale > 0 {
		digits += "." + fmt.Sprintf("%0*d", scale, frac.IntPart())
	}

	iso := unit.String()
	if sym, ok := symbols[iso]; ok {
		return sign + sym + digits
	}
	return sign + digits + " " + iso
}
