// Package money models monetary amounts paired with an ISO 4217 currency.
//
// Amounts are held as decimals (shopspring/decimal) at the currency's standard
// scale, never as floats. The scale comes from CLDR via golang.org/x/text/currency,
// e.g. TWD and USD use 2 decimal places, JPY uses 0.
//
// Persistence layers store money as two values:
//   - the amount in minor units (AmountMinor), e.g. TWD 125.00 -> 12500
//   - the currency code (Currency().Code()), e.g. "TWD"
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	// ErrUnknownCurrency is returned when a code is not a recognised ISO 4217 currency.
	ErrUnknownCurrency = errors.New("money: unknown currency")

	// ErrScale is returned when an amount has more fractional digits than its currency allows.
	ErrScale = errors.New("money: amount exceeds currency scale")

	// ErrOverflow is returned when an amount does not fit into int64 minor units.
	ErrOverflow = errors.New("money: amount overflows minor units")
)

// CurrencyUnit is a validated ISO 4217 currency.
//
// The zero value is not a valid currency; use CurrencyOf.
type CurrencyUnit struct {
	unit currency.Unit
	set  bool
}

// CurrencyOf parses a 3-letter ISO 4217 code. Lower case input is accepted.
func CurrencyOf(code string) (CurrencyUnit, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return CurrencyUnit{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}

	u, err := currency.ParseISO(code)
	if err != nil {
		return CurrencyUnit{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}

	return CurrencyUnit{unit: u, set: true}, nil
}

// MustCurrencyOf is like CurrencyOf but panics on an unknown code.
// Intended for package-level values and tests.
func MustCurrencyOf(code string) CurrencyUnit {
	cu, err := CurrencyOf(code)
	if err != nil {
		panic(err)
	}
	return cu
}

// Code returns the upper case ISO 4217 code, or "" for the zero value.
func (c CurrencyUnit) Code() string {
	if !c.set {
		return ""
	}
	return c.unit.String()
}

// DecimalPlaces returns the standard number of fractional digits for the currency.
func (c CurrencyUnit) DecimalPlaces() int {
	scale, _ := currency.Standard.Rounding(c.unit)
	return scale
}

// IsZero reports whether c is the zero CurrencyUnit.
func (c CurrencyUnit) IsZero() bool {
	return !c.set
}

func (c CurrencyUnit) String() string {
	return c.Code()
}

// Money is an amount in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency CurrencyUnit
}

// Of creates Money at the currency scale.
//
// Amounts with more fractional digits than the currency allows are rejected
// with ErrScale rather than rounded.
func Of(cu CurrencyUnit, amount decimal.Decimal) (Money, error) {
	if cu.IsZero() {
		return Money{}, fmt.Errorf("%w: missing currency", ErrUnknownCurrency)
	}

	places := int32(cu.DecimalPlaces())
	scaled := amount.Round(places)
	if !scaled.Equal(amount) {
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places for %s", ErrScale, amount, places, cu.Code())
	}
	if !scaled.Shift(places).BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: %s %s", ErrOverflow, cu.Code(), amount)
	}

	return Money{amount: scaled, currency: cu}, nil
}

// OfMajor creates Money from a major-unit float such as 100.0.
func OfMajor(cu CurrencyUnit, amount float64) (Money, error) {
	return Of(cu, decimal.NewFromFloat(amount))
}

// OfMinor creates Money from an amount in minor units (e.g. cents).
func OfMinor(cu CurrencyUnit, minor int64) Money {
	return Money{
		amount:   decimal.New(minor, -int32(cu.DecimalPlaces())),
		currency: cu,
	}
}

// Amount returns the amount in major units.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// AmountMinor returns the amount in minor units.
// Of guarantees the result is exact.
func (m Money) AmountMinor() int64 {
	return m.amount.Shift(int32(m.currency.DecimalPlaces())).IntPart()
}

// Currency returns the currency unit.
func (m Money) Currency() CurrencyUnit {
	return m.currency
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether m is the zero Money (no currency).
func (m Money) IsZero() bool {
	return m.currency.IsZero()
}

// Equal reports whether both amount and currency match.
// 100 and 100.00 in the same currency are equal.
func (m Money) Equal(other Money) bool {
	return m.currency.Code() == other.currency.Code() && m.amount.Equal(other.amount)
}

// String formats as "TWD 100.00".
func (m Money) String() string {
	if m.IsZero() {
		return ""
	}
	return m.currency.Code() + " " + m.amount.StringFixed(int32(m.currency.DecimalPlaces()))
}

// MarshalZerologObject lets Money be logged with zerolog's Object().
func (m Money) MarshalZerologObject(e *zerolog.Event) {
	e.Str("currency", m.currency.Code()).
		Str("amount", m.amount.StringFixed(int32(m.currency.DecimalPlaces())))
}

type moneyJSON struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// MarshalJSON encodes as {"currency":"TWD","amount":"125.00"}.
// The zero Money encodes as null.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(moneyJSON{
		Currency: m.currency.Code(),
		Amount:   m.amount.StringFixed(int32(m.currency.DecimalPlaces())),
	})
}

// UnmarshalJSON decodes the MarshalJSON form with the same checks as Of.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}

	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cu, err := CurrencyOf(raw.Currency)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return fmt.Errorf("money: invalid amount %q: %w", raw.Amount, err)
	}

	parsed, err := Of(cu, amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
