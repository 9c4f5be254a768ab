package repository

import (
	"errors"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// AccountRepository defines the interface for account data access operations.
// Accounts are fixed at start-up, so there is no Create or Delete.
type AccountRepository interface {
	Get(id string) (*account.Account, error)
	// List returns accounts in seed order.
	List() ([]*account.Account, error)
	// Update stores a new balance for an existing account.
	Update(a *account.Account) error
}

// TransactionRepository defines the interface for the append-only transaction log.
type TransactionRepository interface {
	Create(tx *account.Transaction) error
	// List returns transactions in creation order.
	List() ([]*account.Transaction, error)
	// Latest returns the most recently created transaction, or nil if the log is empty.
	Latest() (*account.Transaction, error)
}

// TotalsReader is implemented by account repositories that maintain running
// per-currency balance totals.
type TotalsReader interface {
	Totals() (map[money.Code]decimal.Decimal, error)
}
