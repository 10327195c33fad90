package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var priceRegex = regexp.MustCompile(`[.,]?\d[\d.,]*`)

// ParsePrice strips the currency symbol and grouping separators off a price
// label ("$1,234", "Rp 2.345.000", "€1.234,50") and returns the amount. A
// leading separator is a decimal point, "$.99" is 0.99.
func ParsePrice(label string) (decimal.Decimal, error) {
	text := Clean(label)
	number := priceRegex.FindString(text)
	if number == "" {
		return decimal.Decimal{}, parseError("price", label)
	}
	number = strings.TrimRight(number, ".,")

	amount, err := decimal.NewFromString(canonicalNumber(number))
	if err != nil {
		return decimal.Decimal{}, parseError("price", label)
	}
	return amount, nil
}

// canonicalNumber rewrites a locale formatted number into "1234.50" form.
// When both separators appear the last one is the decimal point, a lone
// separator kind is grouping only if every group after it has 3 digits.
func canonicalNumber(number string) string {
	lastDot := strings.LastIndex(number, ".")
	lastComma := strings.LastIndex(number, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return strings.ReplaceAll(number, ",", "")
		}
		number = strings.ReplaceAll(number, ".", "")
		return strings.Replace(number, ",", ".", 1)
	case lastComma >= 0:
		if isGrouped(number, ",") {
			return strings.ReplaceAll(number, ",", "")
		}
		return strings.Replace(number, ",", ".", 1)
	case lastDot >= 0:
		if strings.Count(number, ".") > 1 && isGrouped(number, ".") {
			return strings.ReplaceAll(number, ".", "")
		}
		return number
	}
	return number
}

func isGrouped(number, sep string) bool {
	groups := strings.Split(number, sep)
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}
