// Package numwords spells whole currency amounts in English for printed
// invoices. It uses short-scale groupings only (Thousand, Million,
// Billion); callers append the currency suffix themselves.
package numwords

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned for amounts below zero
var ErrNegativeAmount = errors.New("numwords: amount must not be negative")

var (
	ones  = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	tens  = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	teens = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
)

type scale struct {
	size uint64
	name string
}

var scales = [...]scale{
	{size: 1_000_000_000, name: "Billion"},
	{size: 1_000_000, name: "Million"},
	{size: 1_000, name: "Thousand"},
}

// Convert rounds amount to the nearest whole unit and spells it out,
// e.g. 1205 -> "One Thousand Two Hundred Five".
func Convert(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}
	whole := amount.Round(0)
	if !whole.BigInt().IsUint64() {
		return "", errors.New("numwords: amount out of range")
	}
	return Uint(whole.BigInt().Uint64()), nil
}

// Uint spells out n.
func Uint(n uint64) string {
	if n == 0 {
		return "Zero"
	}

	var b strings.Builder
	for _, sc := range scales {
		if n >= sc.size {
			b.WriteString(Uint(n / sc.size))
			b.WriteString(" ")
			b.WriteString(sc.name)
			b.WriteString(" ")
			n %= sc.size
		}
	}

	if n >= 100 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}

	switch {
	case n >= 20:
		b.WriteString(tens[n/10])
		if n%10 > 0 {
			b.WriteString(" ")
			b.WriteString(ones[n%10])
		}
	case n >= 10:
		b.WriteString(teens[n-10])
	case n > 0:
		b.WriteString(ones[n])
	}

	return strings.TrimSpace(b.String())
}
