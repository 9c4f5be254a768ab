package currency

import (
	"fmt"

	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/shopspring/decimal"
)

// Rate is a single entry of the rate table.
type Rate struct {
	From money.Code
	To   money.Code
	Rate decimal.Decimal
}

// RateTable is an immutable table holding a positive rate for every ordered
// pair of distinct supported currencies. It is safe for concurrent use.
//
// The zero value holds no rates and reports ErrMissingRate for every pair.
type RateTable struct {
	rates   [money.NumCodes][money.NumCodes]decimal.Decimal
	present [money.NumCodes][money.NumCodes]bool
}

var _ Converter = (*RateTable)(nil)

// DefaultRates returns the static rates the ledger ships with.
func DefaultRates() []Rate {
	return []Rate{
		{From: money.KES, To: money.USD, Rate: decimal.RequireFromString("0.0077")},
		{From: money.KES, To: money.NGN, Rate: decimal.RequireFromString("11.79")},
		{From: money.USD, To: money.KES, Rate: decimal.RequireFromString("129.78")},
		{From: money.USD, To: money.NGN, Rate: decimal.RequireFromString("1530.50")},
		{From: money.NGN, To: money.KES, Rate: decimal.RequireFromString("0.0848")},
		{From: money.NGN, To: money.USD, Rate: decimal.RequireFromString("0.00065")},
	}
}

// DefaultRateTable returns a table built from DefaultRates.
func DefaultRateTable() *RateTable {
	return MustRateTable(DefaultRates())
}

// NewRateTable builds a table from rates.
// Invariants enforced:
//   - Both codes of every entry are supported and distinct.
//   - Every rate is strictly positive.
//   - No pair is listed twice.
//   - Every ordered pair of distinct supported codes is covered.
func NewRateTable(rates []Rate) (*RateTable, error) {
	t := &RateTable{}
	for _, r := range rates {
		pair := Pair{From: r.From, To: r.To}
		i, okFrom := r.From.Index()
		j, okTo := r.To.Index()
		if !okFrom || !okTo {
			return nil, fmt.Errorf("%w: %s", money.ErrInvalidCurrency, pair)
		}
		if i == j {
			return nil, fmt.Errorf("%w: %s", ErrSameCurrency, pair)
		}
		if !r.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: %s = %s", ErrInvalidRate, pair, r.Rate)
		}
		if t.present[i][j] {
			return nil, fmt.Errorf("duplicate exchange rate for %s", pair)
		}
		t.rates[i][j] = r.Rate
		t.present[i][j] = true
	}
	for _, from := range money.Codes() {
		for _, to := range money.Codes() {
			if from == to {
				continue
			}
			if _, err := t.Rate(from, to); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// MustRateTable is like NewRateTable but panics on error.
func MustRateTable(rates []Rate) *RateTable {
	t, err := NewRateTable(rates)
	if err != nil {
		panic(fmt.Sprintf("currency.MustRateTable: %v", err))
	}
	return t
}

// Rate returns the multiplier converting one unit of from into to.
func (t *RateTable) Rate(from, to money.Code) (decimal.Decimal, error) {
	pair := Pair{From: from, To: to}
	if from == to {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrSameCurrency, pair)
	}
	i, okFrom := from.Index()
	j, okTo := to.Index()
	if t == nil || !okFrom || !okTo || !t.present[i][j] {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingRate, pair)
	}
	return t.rates[i][j], nil
}

// Rates returns every entry in canonical currency order.
func (t *RateTable) Rates() []Rate {
	var out []Rate
	for _, from := range money.Codes() {
		for _, to := range money.Codes() {
			if r, err := t.Rate(from, to); err == nil {
				out = append(out, Rate{From: from, To: to, Rate: r})
			}
		}
	}
	return out
}

// Convert implements Converter using this table.
func (t *RateTable) Convert(amount money.Money, to money.Code) (*Conversion, error) {
	return Convert(amount, to, t)
}
