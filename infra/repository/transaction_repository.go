package repository

import (
	"errors"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/repository"
	"github.com/google/uuid"
)

// ErrMissingTransactionID is returned when a transaction without an id is appended.
var ErrMissingTransactionID = errors.New("transaction id is required")

// TransactionRepository gives access to the append-only transaction log.
type TransactionRepository struct {
	store *Store
	tx    *txState
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

func (r *TransactionRepository) rlock() (func(), error) {
	if r.tx == nil {
		r.store.mu.RLock()
		return r.store.mu.RUnlock, nil
	}
	if r.tx.done {
		return nil, ErrTransactionClosed
	}
	return func() {}, nil
}

// Create stages tx for appending to the log.
func (r *TransactionRepository) Create(tx *account.Transaction) error {
	if r.tx == nil {
		return ErrWriteOutsideTransaction
	}
	if r.tx.done {
		return ErrTransactionClosed
	}
	if tx.ID == uuid.Nil {
		return ErrMissingTransactionID
	}
	r.tx.transactions = append(r.tx.transactions, cloneTransaction(tx))
	return nil
}

// List returns the log in creation order.
func (r *TransactionRepository) List() ([]*account.Transaction, error) {
	unlock, err := r.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := make([]*account.Transaction, 0, len(r.store.transactions))
	for _, t := range r.store.transactions {
		out = append(out, cloneTransaction(t))
	}
	if r.tx != nil {
		for _, t := range r.tx.transactions {
			out = append(out, cloneTransaction(t))
		}
	}
	return out, nil
}

// Latest returns the most recent transaction, or nil when the log is empty.
func (r *TransactionRepository) Latest() (*account.Transaction, error) {
	unlock, err := r.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	if r.tx != nil && len(r.tx.transactions) > 0 {
		return cloneTransaction(r.tx.transactions[len(r.tx.transactions)-1]), nil
	}
	if n := len(r.store.transactions); n > 0 {
		return cloneTransaction(r.store.transactions[n-1]), nil
	}
	return nil, nil
}
