package money

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when amount text is not a finite decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned when a currency code is not supported.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrCurrencyMismatch is returned when performing arithmetic
	// on money with different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// RangeError reports amount text that is a finite number the ledger does
// not accept: too large in magnitude or too precise. It matches
// ErrInvalidAmount with errors.Is.
type RangeError struct {
	Text     string
	Negative bool
	TooLarge bool
}

func (e *RangeError) Error() string {
	if e.TooLarge {
		return fmt.Sprintf("%s: %q exceeds %s", ErrInvalidAmount, e.Text, MaxAmount)
	}
	return fmt.Sprintf("%s: %q has more than %d fractional digits", ErrInvalidAmount, e.Text, MaxScale)
}

func (e *RangeError) Unwrap() error { return ErrInvalidAmount }
