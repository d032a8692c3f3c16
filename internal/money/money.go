// Package money converts between Brazilian real amounts as typed by people
// ("R$ 2.000,50") and integer cents as stored.
package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountRe    = regexp.MustCompile(`^\d+(\.\d+)?$`)
	thousandsRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// ParseReaisToCents reads an amount in reais. Both "2.000,50" and "2000.50"
// are accepted; a dot followed by exactly three digits is a thousands
// separator. Fractions of a cent are rounded half away from zero.
func ParseReaisToCents(text string) (int64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsRe.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	if !amountRe.MatchString(s) {
		return 0, fmt.Errorf("invalid amount %q", text)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// FormatCents renders cents as "R$ 2.000,50".
func FormatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	fixed := decimal.New(cents, -2).StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "R$ " + b.String() + "," + frac
}
