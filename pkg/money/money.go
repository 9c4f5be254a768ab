// Package money provides functionality for handling monetary values.
//
// It is a value object that represents a monetary value in a specific currency.
// Invariants:
//   - Amount is an exact decimal in the major currency unit; it is never a binary float.
//   - Currency code must be one of the supported codes.
//   - All arithmetic operations require matching currencies.
//   - Full computed precision is kept; rounding happens only in Display.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	// DefaultDecimals is the display precision used when the currency
	// metadata does not provide one.
	DefaultDecimals = 2

	// MaxScale bounds the number of significant fractional digits accepted
	// from text.
	MaxScale = 18
)

// MaxAmount is the largest magnitude accepted from amount text.
var MaxAmount = decimal.New(1, 15)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Money represents a monetary value in a specific currency.
type Money struct {
	amount decimal.Decimal
	code   Code
}

// New creates a new Money value object with the given amount and currency code.
// Invariants enforced:
//   - Currency code must be supported.
//
// Returns Money or an error if any invariant is violated.
func New(amount decimal.Decimal, code Code) (Money, error) {
	if !code.IsValid() {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return Money{amount: amount, code: code}, nil
}

// Must creates a Money object and panics if the currency is not supported.
// Intended for seed data and tests.
func Must(amount decimal.Decimal, code Code) Money {
	m, err := New(amount, code)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v, %v): %v", amount, code, err))
	}
	return m
}

// Zero creates a Money object with zero amount in the specified currency.
func Zero(code Code) Money {
	return Money{amount: decimal.Zero, code: code}
}

// Parse parses amount text into Money of the given currency.
func Parse(text string, code Code) (Money, error) {
	amount, err := ParseAmount(text)
	if err != nil {
		return Money{}, err
	}
	return New(amount, code)
}

// ParseAmount parses user supplied amount text into an exact decimal.
// Surrounding whitespace is ignored and trailing fractional zeros are
// dropped. The sign is not checked here.
//
// Text that is empty or not numeric is rejected with ErrInvalidAmount.
// A finite value above MaxAmount in magnitude, or with more than MaxScale
// significant fractional digits, is rejected with a *RangeError, which
// also matches ErrInvalidAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	// work on the digits so a huge exponent is never rescaled.
	coef := d.Coefficient()
	digits := coef.Abs(coef).String()
	significant := strings.TrimRight(digits, "0")
	exp := int64(d.Exponent()) + int64(len(digits)-len(significant))
	order := exp + int64(len(significant)) - 1

	if order > int64(MaxAmount.Exponent()) {
		return decimal.Zero, &RangeError{Text: text, Negative: d.IsNegative(), TooLarge: true}
	}
	if exp < -MaxScale {
		return decimal.Zero, &RangeError{Text: text, Negative: d.IsNegative()}
	}

	n, _ := new(big.Int).SetString(significant, 10)
	if d.IsNegative() {
		n.Neg(n)
	}
	d = decimal.NewFromBigInt(n, int32(exp))
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, &RangeError{Text: text, Negative: d.IsNegative(), TooLarge: true}
	}
	return d, nil
}

// Amount returns the exact amount in the major currency unit.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code of the Money object.
func (m Money) Currency() Code {
	return m.code
}

// IsSameCurrency checks if m and other share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.code == other.code
}

// Add returns the sum of m and other.
// Invariants enforced:
//   - Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrCurrencyMismatch, other.code, m.code)
	}
	return Money{amount: m.amount.Add(other.amount), code: m.code}, nil
}

// Sub returns m minus other. The result may be negative.
// Invariants enforced:
//   - Currencies must match.
func (m Money) Sub(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrCurrencyMismatch, other.code, m.code)
	}
	return Money{amount: m.amount.Sub(other.amount), code: m.code}, nil
}

// Cmp compares m and other and returns -1, 0 or +1.
func (m Money) Cmp(other Money) (int, error) {
	if !m.IsSameCurrency(other) {
		return 0, fmt.Errorf("%w: cannot compare %s and %s", ErrCurrencyMismatch, m.code, other.code)
	}
	return m.amount.Cmp(other.amount), nil
}

// Equal reports whether m and other have the same currency and numeric value.
// Trailing zeros do not matter: 50.0 USD equals 50.00 USD.
func (m Money) Equal(other Money) bool {
	return m.code == other.code && m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// String returns the amount at full precision, padded to the currency's
// display decimals, followed by the code (e.g. "6489.00 KES").
func (m Money) String() string {
	return FormatAmount(m.amount, m.code) + " " + string(m.code)
}

// Display returns the amount rounded to the currency's display precision and
// formatted with the currency symbol (e.g. "$1,250.50").
func (m Money) Display() string {
	decimals := m.code.Decimals()
	minor := m.amount.Shift(int32(decimals)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return m.String()
	}
	return gomoney.New(minor.IntPart(), string(m.code)).Display()
}

// FormatAmount renders d without losing precision and with at least the
// display decimals of code.
func FormatAmount(d decimal.Decimal, code Code) string {
	places := code.Decimals()
	if d.Exponent() >= -int32(places) {
		return d.StringFixed(int32(places))
	}
	s := d.String()
	if i := strings.IndexByte(s, '.'); i < 0 || len(s)-i-1 < places {
		return d.StringFixed(int32(places))
	}
	return s
}

// MarshalJSON implements json.Marshaler interface.
// The amount is encoded as a string to keep it exact.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency Code   `json:"currency"`
	}{
		Amount:   FormatAmount(m.amount, m.code),
		Currency: m.code,
	})
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	code, err := ParseCode(aux.Currency)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(aux.Amount)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, aux.Amount)
	}
	m.amount = amount
	m.code = code
	return nil
}
