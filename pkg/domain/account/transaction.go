package account

import (
	"time"

	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the immutable record of one transfer.
//
// Amount is what left the source account, in the source currency.
// ConvertedAmount and Rate are set only when the destination currency
// differs; then ConvertedAmount = Amount * Rate is what the destination
// received. Account names are captured at creation for display.
type Transaction struct {
	ID              uuid.UUID
	FromAccountID   string
	ToAccountID     string
	FromAccountName string
	ToAccountName   string
	Amount          money.Money
	ConvertedAmount *money.Money
	Rate            *decimal.Decimal
	Note            string
	CreatedAt       time.Time
}

// Currency returns the source currency.
func (t *Transaction) Currency() money.Code {
	return t.Amount.Currency()
}

// IsConversion reports whether the transfer crossed currencies.
func (t *Transaction) IsConversion() bool {
	return t.ConvertedAmount != nil
}

// Credited returns the amount the destination account received.
func (t *Transaction) Credited() money.Money {
	if t.ConvertedAmount != nil {
		return *t.ConvertedAmount
	}
	return t.Amount
}
