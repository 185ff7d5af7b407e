// Package core provides money parsing and display utilities.
//
// Amounts are always carried as int64 counts of the currency's smallest
// unit. Decimal handling is confined to parsing user input; display goes
// through go-money, which also works on integer minor units.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money pairs an amount in minor units with an ISO 4217 currency code for display.
type Money struct {
	Cents    int64
	Currency string
}

// Validate rejects zero and negative amounts; every stored entry is positive.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// String formats the amount with the currency's symbol and separators.
// Without a known currency the raw minor-unit integer is returned.
func (m Money) String() string {
	if m.Currency == "" || money.GetCurrency(m.Currency) == nil {
		return strconv.FormatInt(m.Cents, 10)
	}
	return money.New(m.Cents, m.Currency).Display()
}

// ParseAmount parses a strictly positive integer amount of minor units.
//
// Examples:
//
//	ParseAmount("1200") -> 1200, nil
//	ParseAmount("0")    -> 0, ErrInvalidAmount
//	ParseAmount("12.5") -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseMajorAmount converts a decimal amount in major units ("12.34" EUR)
// to minor units (1234). Both dot and comma separators are accepted. Input
// with more fractional digits than the currency supports is rejected rather
// than rounded.
func ParseMajorAmount(s, currency string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	minor := d.Shift(int32(cur.Fraction))
	if !minor.IsInteger() || !minor.IsPositive() {
		return 0, ErrInvalidAmount
	}
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, ErrInvalidAmount
	}
	return minor.IntPart(), nil
}
