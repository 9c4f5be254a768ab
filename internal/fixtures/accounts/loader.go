// Package accounts loads the ledger's starting accounts from CSV.
package accounts

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
)

//go:embed accounts.csv
var accountsCSV string

var header = []string{"id", "name", "currency", "balance"}

// ErrInvalidSeed is returned when the seed CSV cannot be turned into accounts.
var ErrInvalidSeed = errors.New("invalid account seed")

// LoadAccountsCSV loads accounts from a CSV file or embedded content.
// If path is empty, it uses the embedded CSV content.
func LoadAccountsCSV(path string) ([]*account.Account, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	} else {
		r = strings.NewReader(accountsCSV)
	}

	return parseAccountsCSV(r)
}

// parseAccountsCSV expects the header id,name,currency,balance.
// Any malformed row fails the whole load.
func parseAccountsCSV(r io.Reader) ([]*account.Account, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = len(header)
	csvReader.TrimLeadingSpace = true
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidSeed)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(records[0][i]), col) {
			return nil, fmt.Errorf("%w: expected header %s", ErrInvalidSeed, strings.Join(header, ","))
		}
	}

	seen := make(map[string]bool, len(records)-1)
	out := make([]*account.Account, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		code, err := money.ParseCode(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSeed, line, err)
		}
		balance, err := money.Parse(rec[3], code)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSeed, line, err)
		}
		a, err := account.New(rec[0], strings.TrimSpace(rec[1]), balance)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidSeed, line, err)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: line %d: duplicate id %q", ErrInvalidSeed, line, a.ID)
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}
