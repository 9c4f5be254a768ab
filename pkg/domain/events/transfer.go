// Package events defines the domain events emitted by the ledger.
package events

import (
	"github.com/amirasaad/fxledger/pkg/domain/account"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// Event type constants
const (
	EventTypeTransferCompleted = "Transfer.Completed"
	EventTypeTransferRejected  = "Transfer.Rejected"
	EventTypeTransferFailed    = "Transfer.Failed"
)

// TransferCompleted is emitted after a transfer has been committed.
type TransferCompleted struct {
	Transaction account.Transaction
}

// TransferRejected is emitted when validation rejects a transfer request.
// Nothing was changed.
type TransferRejected struct {
	FromAccountID string
	ToAccountID   string
	Code          account.ErrorCode
	Reason        string
}

// TransferFailed is emitted when a transfer could not run for a reason
// other than user input, e.g. a missing exchange rate.
type TransferFailed struct {
	FromAccountID string
	ToAccountID   string
	Reason        string
}

func (TransferCompleted) Type() string { return EventTypeTransferCompleted }
func (TransferRejected) Type() string  { return EventTypeTransferRejected }
func (TransferFailed) Type() string    { return EventTypeTransferFailed }
