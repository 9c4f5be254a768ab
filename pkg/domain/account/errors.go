package account

import (
	"errors"
	"fmt"

	"github.com/amirasaad/fxledger/pkg/money"
)

var (
	// ErrUnknownAccount is returned when a referenced account id has no matching account.
	ErrUnknownAccount = errors.New("account not found")

	// ErrSameAccount is returned when a transfer is attempted from an account to itself.
	ErrSameAccount = errors.New("source and destination must be different")

	// ErrInvalidAmount is returned when amount text does not parse as a finite decimal.
	ErrInvalidAmount = money.ErrInvalidAmount

	// ErrNonPositiveAmount is returned when a parsed amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be above 0")

	// ErrInsufficientFunds is returned when the amount exceeds the source balance.
	ErrInsufficientFunds = errors.New("insufficient balance in source account")

	// ErrNegativeBalance is returned when an account would be created with a negative balance.
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrInvalidAccountID is returned when an account is created without an id.
	ErrInvalidAccountID = errors.New("account id is required")
)

// Field names the transfer input an error refers to.
type Field string

// Transfer request fields
const (
	FieldFromAccount Field = "from_account_id"
	FieldToAccount   Field = "to_account_id"
	FieldAmount      Field = "amount"
)

// ErrorCode is a stable, machine readable identifier of a validation failure.
type ErrorCode string

// Validation error codes
const (
	CodeUnknownAccount    ErrorCode = "UNKNOWN_ACCOUNT"
	CodeSameAccount       ErrorCode = "SAME_ACCOUNT"
	CodeInvalidAmount     ErrorCode = "INVALID_AMOUNT"
	CodeNonPositiveAmount ErrorCode = "NON_POSITIVE_AMOUNT"
	CodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
)

// ValidationError is a recoverable, user-correctable rejection of a
// transfer request. It wraps one of the sentinel errors above.
type ValidationError struct {
	Field  Field
	Err    error
	Detail string
}

func newValidationError(field Field, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Code returns the stable code of the wrapped sentinel.
func (e *ValidationError) Code() ErrorCode {
	switch {
	case errors.Is(e.Err, ErrUnknownAccount):
		return CodeUnknownAccount
	case errors.Is(e.Err, ErrSameAccount):
		return CodeSameAccount
	case errors.Is(e.Err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(e.Err, ErrNonPositiveAmount):
		return CodeNonPositiveAmount
	case errors.Is(e.Err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	}
	return ""
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
