package pricing

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every amount is kept at.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds half away from zero to two places, which is half-up for
// the non-negative amounts this package produces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FormatPrice renders an amount for display: thousands separators and two decimals.
//
//	FormatPrice(decimal.RequireFromString("1234.5")) // "1,234.50"
func FormatPrice(d decimal.Decimal) string {
	fixed := RoundMoney(d).StringFixed(MoneyPlaces)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(whole[:lead])
	for i := lead; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// ParsePrice reads an amount written by FormatPrice (separators optional).
func ParsePrice(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return decimal.Zero, errs.NewValueIsRequiredError("price")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%q: %w", s, err))
	}
	return d, nil
}

// PlainAmount renders an amount with two decimals and no separators, as
// payment gateways expect it.
func PlainAmount(d decimal.Decimal) string {
	return RoundMoney(d).StringFixed(MoneyPlaces)
}
