// Package core provides the expense domain types and money handling.
//
// Amounts are kept as arbitrary precision decimals so totals never pick
// up binary floating point drift.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts outside the float64 range are rejected, so a value such as
// 1e100000000 never has to be rendered digit by digit.
const (
	maxIntegerDigits = 309
	minExponent      = -324
)

// Money is a non-negative decimal amount.
type Money struct {
	decimal.Decimal
}

// Zero is the additive identity for totals.
var Zero = Money{Decimal: decimal.Zero}

// MustMoney parses s and panics on failure. Intended for tests and constants.
func MustMoney(s string) Money {
	m, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m+o.
func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

// Equal compares by value, so 10 and 10.0 are equal.
func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// ParseAmount converts user input to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading plus sign and exponent notation (1e3). Negative values,
// NaN, infinities, zero and magnitudes outside the float64 range are
// rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("1e3")   -> 1000, nil
//	ParseAmount("-1")    -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	return parsePositive(strings.ReplaceAll(s, ",", "."))
}

// ParseStoredAmount parses an amount read back from the persistence file.
// The comma is a field separator there, so only the dot form is accepted,
// along with exponent notation such as 1.0E7.
func ParseStoredAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ",") {
		return Money{}, ErrInvalidAmount
	}
	return parsePositive(s)
}

func parsePositive(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if !inRange(d) {
		return Money{}, ErrInvalidAmount
	}
	m := Money{Decimal: d}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

func inRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < minExponent {
		return false
	}
	digits := len(d.Coefficient().Text(10))
	if d.IsNegative() {
		digits--
	}
	return exp+int64(digits) <= maxIntegerDigits
}
