package ledger

import (
	"time"

	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
)

// TransferRequest represents the request body for transferring funds between accounts.
// Amount is decimal text so it reaches the ledger without float rounding.
// Blank or missing fields are classified by the ledger itself (unknown
// account, invalid amount), so only sizes are checked here.
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"max=64"`
	ToAccountID   string `json:"to_account_id" validate:"max=64"`
	Amount        string `json:"amount" validate:"max=64"`
	Note          string `json:"note" validate:"max=280"`
}

// AccountDTO is the API representation of an account.
type AccountDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
	Display  string `json:"display"`
}

// TransactionDTO is the API representation of a transaction.
type TransactionDTO struct {
	ID                string  `json:"id"`
	FromAccountID     string  `json:"from_account_id"`
	FromAccountName   string  `json:"from_account_name"`
	ToAccountID       string  `json:"to_account_id"`
	ToAccountName     string  `json:"to_account_name"`
	Amount            string  `json:"amount"`
	Currency          string  `json:"currency"`
	ConvertedAmount   *string `json:"converted_amount,omitempty"`
	ConvertedCurrency *string `json:"converted_currency,omitempty"`
	Rate              *string `json:"rate,omitempty"`
	Note              string  `json:"note,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// TotalDTO is the sum of balances held in one currency.
type TotalDTO struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
	Display  string `json:"display"`
}

// RateDTO is one entry of the exchange rate table.
type RateDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rate string `json:"rate"`
}

// ToAccountDTO maps an account to its API representation.
func ToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:       a.ID,
		Name:     a.Name,
		Currency: string(a.Currency()),
		Balance:  money.FormatAmount(a.Balance.Amount(), a.Currency()),
		Display:  a.Balance.Display(),
	}
}

// ToTransactionDTO maps a transaction to its API representation.
func ToTransactionDTO(tx *account.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:              tx.ID.String(),
		FromAccountID:   tx.FromAccountID,
		FromAccountName: tx.FromAccountName,
		ToAccountID:     tx.ToAccountID,
		ToAccountName:   tx.ToAccountName,
		Amount:          money.FormatAmount(tx.Amount.Amount(), tx.Currency()),
		Currency:        string(tx.Currency()),
		Note:            tx.Note,
		CreatedAt:       tx.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if tx.ConvertedAmount != nil {
		amount := money.FormatAmount(tx.ConvertedAmount.Amount(), tx.ConvertedAmount.Currency())
		code := string(tx.ConvertedAmount.Currency())
		dto.ConvertedAmount = &amount
		dto.ConvertedCurrency = &code
	}
	if tx.Rate != nil {
		rate := tx.Rate.String()
		dto.Rate = &rate
	}
	return dto
}

// ToTotalDTOs maps per-currency totals to a list in canonical currency order.
func ToTotalDTOs(totals map[money.Code]money.Money) []TotalDTO {
	out := make([]TotalDTO, 0, len(totals))
	for _, code := range money.Codes() {
		total, ok := totals[code]
		if !ok {
			continue
		}
		out = append(out, TotalDTO{
			Currency: string(code),
			Amount:   money.FormatAmount(total.Amount(), code),
			Display:  total.Display(),
		})
	}
	return out
}

// ToRateDTOs maps the rate table entries.
func ToRateDTOs(rates []currency.Rate) []RateDTO {
	out := make([]RateDTO, 0, len(rates))
	for _, r := range rates {
		out = append(out, RateDTO{From: string(r.From), To: string(r.To), Rate: r.Rate.String()})
	}
	return out
}
