package currency

import (
	"errors"
	"fmt"

	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingRate indicates the rate table has no entry for a required
	// currency pair. It is a configuration defect, not a user input error.
	ErrMissingRate = errors.New("missing exchange rate")

	// ErrInvalidRate indicates a rate that is zero or negative.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrSameCurrency indicates a rate was requested for a pair whose two
	// sides are the same currency. Such transfers are never converted.
	ErrSameCurrency = errors.New("same currency")
)

// Converter defines the interface for converting amounts between currencies.
type Converter interface {
	// Convert converts amount into the target currency.
	// It returns nil when no conversion applies (same currency).
	Convert(amount money.Money, to money.Code) (*Conversion, error)
}

// RateSource looks up the multiplier for an ordered currency pair.
type RateSource interface {
	Rate(from, to money.Code) (decimal.Decimal, error)
}

// Conversion holds the destination side of a cross-currency movement.
type Conversion struct {
	Amount money.Money     // credited amount, in the target currency
	Rate   decimal.Decimal // Amount = source amount * Rate
}

// Pair is an ordered currency pair.
type Pair struct {
	From money.Code
	To   money.Code
}

func (p Pair) String() string {
	return fmt.Sprintf("%s->%s", p.From, p.To)
}

// Convert computes the destination amount for amount in currency to.
//
// When the currencies match it returns nil: the destination is credited the
// exact source amount and no rate is recorded. Otherwise the product keeps
// the full precision of amount * rate.
func Convert(amount money.Money, to money.Code, rates RateSource) (*Conversion, error) {
	from := amount.Currency()
	if from == to {
		return nil, nil
	}
	rate, err := rates.Rate(from, to)
	if err != nil {
		return nil, err
	}
	converted, err := money.New(amount.Amount().Mul(rate), to)
	if err != nil {
		return nil, err
	}
	return &Conversion{Amount: converted, Rate: rate}, nil
}
