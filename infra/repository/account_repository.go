package repository

import (
	"fmt"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/amirasaad/fxledger/pkg/repository"
	"github.com/shopspring/decimal"
)

// AccountRepository reads committed accounts, or, inside a unit of work,
// committed accounts overlaid with the writes staged so far.
// Returned accounts are copies.
type AccountRepository struct {
	store *Store
	tx    *txState
}

var (
	_ repository.AccountRepository = (*AccountRepository)(nil)
	_ repository.TotalsReader      = (*AccountRepository)(nil)
)

// rlock takes the read lock when used outside a unit of work.
// Inside one, Do already holds the write lock.
func (r *AccountRepository) rlock() (func(), error) {
	if r.tx == nil {
		r.store.mu.RLock()
		return r.store.mu.RUnlock, nil
	}
	if r.tx.done {
		return nil, ErrTransactionClosed
	}
	return func() {}, nil
}

func (r *AccountRepository) lookup(id string) (*account.Account, bool) {
	if r.tx != nil {
		if a, ok := r.tx.accounts[id]; ok {
			return a, true
		}
	}
	a, ok := r.store.accounts[id]
	return a, ok
}

// Get returns the account with the given id.
func (r *AccountRepository) Get(id string) (*account.Account, error) {
	unlock, err := r.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	a, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("account %q: %w", id, repository.ErrNotFound)
	}
	return cloneAccount(a), nil
}

// List returns every account in seed order.
func (r *AccountRepository) List() ([]*account.Account, error) {
	unlock, err := r.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := make([]*account.Account, 0, len(r.store.order))
	for _, id := range r.store.order {
		a, _ := r.lookup(id)
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

// Update stages a new balance for an existing account.
func (r *AccountRepository) Update(a *account.Account) error {
	if r.tx == nil {
		return ErrWriteOutsideTransaction
	}
	if r.tx.done {
		return ErrTransactionClosed
	}
	current, ok := r.lookup(a.ID)
	if !ok {
		return fmt.Errorf("account %q: %w", a.ID, repository.ErrNotFound)
	}
	if current.Currency() != a.Currency() {
		return fmt.Errorf("account %q: %w", a.ID, ErrAccountIdentity)
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("account %q: %w", a.ID, account.ErrNegativeBalance)
	}
	r.tx.accounts[a.ID] = cloneAccount(a)
	return nil
}

// Totals returns the running per-currency balance totals. Every supported
// currency is present, with zero when no account holds it.
func (r *AccountRepository) Totals() (map[money.Code]decimal.Decimal, error) {
	unlock, err := r.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	totals := r.store.totals
	if r.tx != nil {
		for id, a := range r.tx.accounts {
			idx, _ := a.Currency().Index()
			totals[idx] = totals[idx].Add(a.Balance.Amount()).Sub(r.store.accounts[id].Balance.Amount())
		}
	}
	out := make(map[money.Code]decimal.Decimal, money.NumCodes)
	for i, code := range money.Codes() {
		out[code] = totals[i]
	}
	return out, nil
}
