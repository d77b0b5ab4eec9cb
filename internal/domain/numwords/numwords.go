// Package numwords converts monetary amounts to English words using the
// Indian numbering system (crore = 10^7, lakh = 10^5, thousand = 10^3).
// The result is the spelled-out whole-unit amount suffixed with "Only",
// as printed on the generated tax documents.
package numwords

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned for negative input; spelled-out totals are
// only defined for non-negative amounts.
var ErrNegativeAmount = errors.New("numwords: negative amount")

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountToWords renders amount in words. The amount is rounded to the nearest
// whole unit first; paise are never spelled out. Zero yields "Zero Only".
func AmountToWords(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}
	n := amount.Round(0).IntPart()
	if n == 0 {
		return "Zero Only", nil
	}
	return spell(n) + " Only", nil
}

// spell renders n >= 1. A crore count of 1000 or more recurses, so ten
// thousand crore comes out as "Ten Thousand Crore" with full Indian grouping
// of the count itself.
func spell(n int64) string {
	crore := n / 1_00_00_000
	lakh := (n % 1_00_00_000) / 1_00_000
	thousand := (n % 1_00_000) / 1_000
	remainder := n % 1_000

	var b strings.Builder
	if crore > 0 {
		b.WriteString(spell(crore))
		b.WriteString(" Crore ")
	}
	if lakh > 0 {
		b.WriteString(group(lakh))
		b.WriteString(" Lakh ")
	}
	if thousand > 0 {
		b.WriteString(group(thousand))
		b.WriteString(" Thousand ")
	}
	if remainder > 0 {
		b.WriteString(group(remainder))
	}

	return strings.TrimSpace(b.String())
}

// group spells a value in [1, 999].
func group(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		s := tens[n/10]
		if n%10 != 0 {
			s += " " + ones[n%10]
		}
		return s
	default:
		s := ones[n/100] + " Hundred"
		if n%100 != 0 {
			s += " " + group(n%100)
		}
		return s
	}
}
