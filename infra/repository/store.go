// Package repository provides the in-memory storage adapter behind the
// repository ports. State lives for the lifetime of the process only.
package repository

import (
	"errors"
	"fmt"
	"sync"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicateAccount is returned when the seed lists an account id twice.
	ErrDuplicateAccount = errors.New("duplicate account id")

	// ErrWriteOutsideTransaction is returned when a write is attempted through
	// a repository that was not obtained inside UoW.Do.
	ErrWriteOutsideTransaction = errors.New("write outside unit of work")

	// ErrTransactionClosed is returned when a repository is used after the
	// unit of work that produced it has finished.
	ErrTransactionClosed = errors.New("unit of work already finished")

	// ErrAccountIdentity is returned when an update tries to change an
	// account's currency.
	ErrAccountIdentity = errors.New("account currency cannot change")
)

// Store holds the committed accounts, the transaction log and the running
// per-currency balance totals. All access goes through its lock.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*account.Account
	order        []string
	transactions []*account.Transaction
	totals       [money.NumCodes]decimal.Decimal
}

// NewStore creates a store holding copies of the seed accounts.
func NewStore(seed []*account.Account) (*Store, error) {
	s := &Store{accounts: make(map[string]*account.Account, len(seed))}
	for _, a := range seed {
		if a == nil {
			continue
		}
		if _, exists := s.accounts[a.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, a.ID)
		}
		idx, ok := a.Currency().Index()
		if !ok {
			return nil, fmt.Errorf("account %s: %w", a.ID, money.ErrInvalidCurrency)
		}
		s.accounts[a.ID] = cloneAccount(a)
		s.order = append(s.order, a.ID)
		s.totals[idx] = s.totals[idx].Add(a.Balance.Amount())
	}
	return s, nil
}

// txState holds writes staged by one unit of work.
type txState struct {
	accounts     map[string]*account.Account
	transactions []*account.Transaction
	done         bool
}

func (s *Store) commit(tx *txState) {
	for id, a := range tx.accounts {
		old := s.accounts[id]
		idx, _ := a.Currency().Index()
		s.totals[idx] = s.totals[idx].Add(a.Balance.Amount()).Sub(old.Balance.Amount())
		s.accounts[id] = a
	}
	s.transactions = append(s.transactions, tx.transactions...)
}

func cloneAccount(a *account.Account) *account.Account {
	c := *a
	return &c
}

func cloneTransaction(t *account.Transaction) *account.Transaction {
	c := *t
	if t.ConvertedAmount != nil {
		v := *t.ConvertedAmount
		c.ConvertedAmount = &v
	}
	if t.Rate != nil {
		v := *t.Rate
		c.Rate = &v
	}
	return &c
}
