package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Truncate shortens s to max runes, replacing the tail with "..." so the
// result is exactly max runes. Strings of max runes or fewer are unchanged.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	keep := max - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + ellipsis
}

var amountRegex = regexp.MustCompile(`\d[\d,]*(\.\d+)?`)

var currencySymbols = map[string]string{
	"USD": "$", "CAD": "$", "AUD": "$", "NZD": "$",
	"EUR": "€", "GBP": "£", "JPY": "¥", "INR": "₹", "CHF": "CHF ",
}

// FormatPrice turns a structured-data amount ("8500.00", "USD 8500") into a
// display price such as "$8,500". Amounts that cannot be parsed are returned
// trimmed, unchanged.
func FormatPrice(amount, currency string) string {
	amount = strings.TrimSpace(amount)
	match := amountRegex.FindString(amount)
	if match == "" {
		return amount
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return amount
	}

	symbol, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		if currency != "" {
			symbol = strings.ToUpper(strings.TrimSpace(currency)) + " "
		} else {
			symbol = "$"
		}
	}
	return symbol + groupThousands(value)
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "00" {
		b.WriteString("." + frac)
	}
	return b.String()
}
