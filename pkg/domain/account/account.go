// Package account holds the ledger's data model (accounts and transactions)
// and the pure transfer validator.
package account

import (
	"fmt"
	"strings"

	"github.com/amirasaad/fxledger/pkg/money"
)

// Account represents a virtual financial account holding a single currency.
//
// Invariants:
//   - ID is non-empty and never changes.
//   - The balance can never be negative.
//   - The currency is fixed by the opening balance.
type Account struct {
	ID      string
	Name    string
	Balance money.Money
}

// New creates an account after checking its invariants.
func New(id, name string, balance money.Money) (*Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidAccountID
	}
	if !balance.Currency().IsValid() {
		return nil, fmt.Errorf("account %s: %w", id, money.ErrInvalidCurrency)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("account %s: %w", id, ErrNegativeBalance)
	}
	return &Account{ID: id, Name: name, Balance: balance}, nil
}

// Currency returns the currency the account is denominated in.
func (a *Account) Currency() money.Code {
	return a.Balance.Currency()
}

// Debit removes amount from the balance.
// Invariants enforced:
//   - Currencies must match.
//   - Amount must be positive.
//   - The balance must stay non-negative.
func (a *Account) Debit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	next, err := a.Balance.Sub(amount)
	if err != nil {
		return err
	}
	if next.IsNegative() {
		return ErrInsufficientFunds
	}
	a.Balance = next
	return nil
}

// Credit adds amount to the balance.
// Invariants enforced:
//   - Currencies must match.
//   - Amount must be positive.
func (a *Account) Credit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	next, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = next
	return nil
}
