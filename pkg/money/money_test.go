package money_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a new Money instance for testing
func mustParse(t *testing.T, text string, code money.Code) money.Money {
	t.Helper()
	m, err := money.Parse(text, code)
	require.NoError(t, err, "failed to create money for test")
	return m
}

func TestParseAmount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"plain", "50.00", "50", false},
		{"surrounding whitespace", "  12.5 ", "12.5", false},
		{"negative parses", "-3", "-3", false},
		{"zero parses", "0", "0", false},
		{"many decimals kept", "0.123456789", "0.123456789", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"letters", "abc", "", true},
		{"thousands separator", "1,000", "", true},
		{"nan", "NaN", "", true},
		{"infinity", "Inf", "", true},
		{"too large", "1000000000000001", "", true},
		{"huge exponent", "1e2000000000", "", true},
		{"too precise", "0.0000000000000000001", "", true},
		{"trailing zeros beyond scale", "0.10000000000000000000000", "0.1", false},
		{"largest amount", "1000000000000000", "1000000000000000", false},
		{"negative zero", "-0.000", "0", false},
		{"zero tiny exponent", "0e-30", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := money.ParseAmount(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_RangeError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text     string
		negative bool
		tooLarge bool
	}{
		{"1e16", false, true},
		{"-1e16", true, true},
		{"1e2000000000", false, true},
		{"1e-19", false, false},
		{"-1e-2000000000", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			_, err := money.ParseAmount(tt.text)
			require.ErrorIs(t, err, money.ErrInvalidAmount)
			var rangeErr *money.RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.negative, rangeErr.Negative)
			assert.Equal(t, tt.tooLarge, rangeErr.TooLarge)
		})
	}
}

func TestNew_InvalidCurrency(t *testing.T) {
	t.Parallel()
	_, err := money.New(decimal.NewFromInt(1), money.Code("EUR"))
	require.ErrorIs(t, err, money.ErrInvalidCurrency)
	assert.Panics(t, func() { money.Must(decimal.NewFromInt(1), money.Code("XXX")) })
}

func TestParseCode(t *testing.T) {
	t.Parallel()
	c, err := money.ParseCode(" kes ")
	require.NoError(t, err)
	assert.Equal(t, money.KES, c)

	_, err = money.ParseCode("EUR")
	require.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestCodes_CanonicalOrder(t *testing.T) {
	t.Parallel()
	codes := money.Codes()
	require.Len(t, codes, money.NumCodes)
	for i, c := range codes {
		idx, ok := c.Index()
		require.True(t, ok)
		assert.Equal(t, i, idx)
		assert.Equal(t, 2, c.Decimals())
	}
	// the returned slice is a copy
	codes[0] = "XXX"
	assert.Equal(t, money.KES, money.Codes()[0])
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a := mustParse(t, "100.10", money.USD)
	b := mustParse(t, "0.05", money.USD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "100.15 USD", sum.String())

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.Equal(t, "-100.05 USD", diff.String())

	cmp, err := a.Cmp(b)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = a.Add(mustParse(t, "1", money.KES))
	require.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = a.Sub(mustParse(t, "1", money.NGN))
	require.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = a.Cmp(mustParse(t, "1", money.NGN))
	require.ErrorIs(t, err, money.ErrCurrencyMismatch)
}

func TestRepeatedAdditionHasNoDrift(t *testing.T) {
	t.Parallel()
	total := money.Zero(money.USD)
	step := mustParse(t, "0.10", money.USD)
	for range 1000 {
		var err error
		total, err = total.Add(step)
		require.NoError(t, err)
	}
	assert.True(t, total.Equal(mustParse(t, "100", money.USD)))
}

func TestString_KeepsFullPrecision(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want string
	}{
		{"6489.0000", "6489.00 KES"},
		{"6489", "6489.00 KES"},
		{"1.5", "1.50 KES"},
		{"0.12345", "0.12345 KES"},
		{"2.1000", "2.10 KES"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mustParse(t, tt.text, money.KES).String())
		})
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$1,250.50", mustParse(t, "1250.5", money.USD).Display())
	assert.Equal(t, "$0.13", mustParse(t, "0.125", money.USD).Display())
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	m := mustParse(t, "6489.0000", money.KES)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"6489.00","currency":"KES"}`, string(data))

	var back money.Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(back))

	require.Error(t, json.Unmarshal([]byte(`{"amount":"1","currency":"EUR"}`), &back))
	require.Error(t, json.Unmarshal([]byte(`{"amount":"x","currency":"USD"}`), &back))
}
