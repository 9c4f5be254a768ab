package account

import (
	"errors"
	"strings"

	"github.com/amirasaad/fxledger/pkg/money"
)

// Lookup resolves an account id against a read-only snapshot of account state.
type Lookup func(id string) (Account, bool)

// Index returns a Lookup over a fixed slice of accounts.
func Index(accounts []Account) Lookup {
	byID := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return func(id string) (Account, bool) {
		a, ok := byID[id]
		return a, ok
	}
}

// Transfer is a transfer request that passed validation.
type Transfer struct {
	From   Account
	To     Account
	Amount money.Money // in the source currency
}

// ValidateTransfer checks a proposed transfer and stops at the first failure.
//
// Checks, in order:
//  1. fromID references an existing account.
//  2. toID references an existing account.
//  3. fromID and toID differ.
//  4. rawAmount parses as a finite decimal.
//  5. the amount is strictly positive.
//  6. the amount does not exceed the source balance.
//
// It has no side effects; identical inputs give identical results.
func ValidateTransfer(lookup Lookup, fromID, toID, rawAmount string) (*Transfer, error) {
	t, errs := validate(lookup, fromID, toID, rawAmount, true)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return t, nil
}

// ValidateTransferAll runs the same checks but collects every applicable
// error, for forms that show one message per field.
func ValidateTransferAll(lookup Lookup, fromID, toID, rawAmount string) []*ValidationError {
	_, errs := validate(lookup, fromID, toID, rawAmount, false)
	return errs
}

func validate(lookup Lookup, fromID, toID, rawAmount string, firstOnly bool) (*Transfer, []*ValidationError) {
	var errs []*ValidationError
	fail := func(e *ValidationError) bool {
		errs = append(errs, e)
		return firstOnly
	}

	from, fromOK := lookup(fromID)
	if !fromOK && fail(newValidationError(FieldFromAccount, ErrUnknownAccount, "%q", fromID)) {
		return nil, errs
	}
	to, toOK := lookup(toID)
	if !toOK && fail(newValidationError(FieldToAccount, ErrUnknownAccount, "%q", toID)) {
		return nil, errs
	}
	if fromOK && toOK && fromID == toID && fail(&ValidationError{Field: FieldToAccount, Err: ErrSameAccount}) {
		return nil, errs
	}

	amount, err := money.ParseAmount(rawAmount)
	amountOK := err == nil
	var rangeErr *money.RangeError
	switch {
	case amountOK:
	case errors.As(err, &rangeErr) && rangeErr.Negative:
		// finite but negative: the sign decides before the range does.
		if fail(newValidationError(FieldAmount, ErrNonPositiveAmount, "got %q", rawAmount)) {
			return nil, errs
		}
	case errors.As(err, &rangeErr) && rangeErr.TooLarge:
		// larger than any balance can hold.
		if fromOK && fail(newValidationError(FieldAmount, ErrInsufficientFunds, "requested %q, available %s",
			strings.TrimSpace(rawAmount), from.Balance)) {
			return nil, errs
		}
	default:
		if fail(newValidationError(FieldAmount, ErrInvalidAmount, "%q", rawAmount)) {
			return nil, errs
		}
	}
	if amountOK && !amount.IsPositive() {
		amountOK = false
		if fail(newValidationError(FieldAmount, ErrNonPositiveAmount, "got %s", amount)) {
			return nil, errs
		}
	}
	if amountOK && fromOK && amount.GreaterThan(from.Balance.Amount()) {
		if fail(newValidationError(FieldAmount, ErrInsufficientFunds, "requested %s, available %s",
			money.FormatAmount(amount, from.Currency()), from.Balance)) {
			return nil, errs
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Transfer{
		From:   from,
		To:     to,
		Amount: money.Must(amount, from.Currency()),
	}, nil
}
