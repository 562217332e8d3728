// Package core holds the business records, the money type and the
// validation error taxonomy shared by the query engine and the forms.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Money is a decimal amount. The zero value is zero.
type Money struct {
	d decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{d: d} }

func MoneyFromInt(v int64) Money { return Money{d: decimal.NewFromInt(v)} }

// ParseMoney parses a plain decimal string such as "12.50".
// Signs are accepted; callers decide whether negative values are allowed.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{d: d}, nil
}

// MustMoney is ParseMoney for constants and fixtures.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal { return m.d }
func (m Money) Add(o Money) Money        { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money        { return Money{d: m.d.Sub(o.d)} }
func (m Money) Mul(o Money) Money        { return Money{d: m.d.Mul(o.d)} }
func (m Money) IsPositive() bool         { return m.d.IsPositive() }
func (m Money) IsNegative() bool         { return m.d.IsNegative() }
func (m Money) IsZero() bool             { return m.d.IsZero() }
func (m Money) Equal(o Money) bool       { return m.d.Equal(o.d) }

// String formats the amount with two decimals, e.g. "25.00".
func (m Money) String() string { return m.d.StringFixed(2) }

// Sum adds up amounts.
func Sum(amounts ...Money) Money {
	total := Money{}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (m Money) MarshalJSON() ([]byte, error) { return m.d.MarshalJSON() }

func (m *Money) UnmarshalJSON(b []byte) error { return m.d.UnmarshalJSON(b) }
