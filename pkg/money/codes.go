package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
)

// Code represents a currency code supported by the ledger.
//
// The set is closed: every table keyed by currency is an array sized by
// NumCodes, so adding a code here forces every such table to be revisited.
type Code string

// Supported currency codes
const (
	KES Code = "KES" // Kenyan Shilling
	USD Code = "USD" // US Dollar
	NGN Code = "NGN" // Nigerian Naira
)

// codes lists the supported currencies in canonical order.
var codes = [...]Code{KES, USD, NGN}

// NumCodes is the number of supported currencies.
const NumCodes = len(codes)

// Codes returns the supported currency codes in canonical order.
func Codes() []Code {
	out := make([]Code, NumCodes)
	copy(out, codes[:])
	return out
}

// ParseCode returns the Code for s, accepting any letter case and
// surrounding whitespace.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

// Index returns the position of c in the canonical order.
func (c Code) Index() (int, bool) {
	switch c {
	case KES:
		return 0, true
	case USD:
		return 1, true
	case NGN:
		return 2, true
	}
	return -1, false
}

// IsValid checks if the currency code is one of the supported codes.
func (c Code) IsValid() bool {
	_, ok := c.Index()
	return ok
}

// Decimals returns the number of minor-unit digits used for display.
func (c Code) Decimals() int {
	if cur := gomoney.GetCurrency(string(c)); cur != nil {
		return cur.Fraction
	}
	return DefaultDecimals
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}
