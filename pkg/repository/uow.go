package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside a transaction boundary: either every write made through
// the repositories handed to fn becomes visible at once, or, when fn returns
// an error, none does. Repositories obtained outside Do read committed state.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// The provided function receives a UnitOfWork for repository access.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
