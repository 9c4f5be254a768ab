package repository

import (
	"context"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/repository"
)

// UoW provides transaction boundary and repository access in one abstraction.
//
// Do holds the store's write lock for the whole callback, so a
// read-validate-write sequence run inside it cannot interleave with another.
// Writes are staged and applied to the store only when the callback succeeds.
type UoW struct {
	store *Store
	tx    *txState
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW creates a new UoW over store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
// Calling Do on a UoW that is already inside a transaction joins that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &txState{accounts: make(map[string]*account.Account)}
	defer func() { tx.done = true }()

	if err := fn(&UoW{store: u.store, tx: tx}); err != nil {
		return err
	}
	u.store.commit(tx)
	return nil
}

// AccountRepository returns the account repository bound to this unit of work.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &AccountRepository{store: u.store, tx: u.tx}, nil
}

// TransactionRepository returns the transaction repository bound to this unit of work.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &TransactionRepository{store: u.store, tx: u.tx}, nil
}
