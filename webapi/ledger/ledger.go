// Package ledger exposes the ledger operations over HTTP.
package ledger

import (
	"errors"
	"slices"
	"strings"

	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
	ledgersvc "github.com/amirasaad/fxledger/pkg/service/ledger"
	"github.com/amirasaad/fxledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for the ledger.
func Routes(app *fiber.App, svc *ledgersvc.Service, rates *currency.RateTable) {
	api := app.Group("/api")

	api.Get("/accounts", ListAccounts(svc))
	api.Get("/transactions", ListTransactions(svc))
	api.Post("/transfers", CreateTransfer(svc))
	api.Get("/totals", Totals(svc))
	api.Get("/rates", ListRates(rates))
}

// ListAccounts returns a Fiber handler listing all accounts with their balances.
// @Summary List accounts
// @Description Get every account with its current balance, in seed order
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response{data=[]AccountDTO}
// @Failure 500 {object} common.ProblemDetails
// @Router /api/accounts [get]
func ListAccounts(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := svc.ListAccounts(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		dtos := make([]AccountDTO, 0, len(accounts))
		for _, a := range accounts {
			dtos = append(dtos, ToAccountDTO(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched successfully", dtos)
	}
}

// ListTransactions returns a Fiber handler for the transaction history.
// @Summary List transactions
// @Description Get the transaction log, optionally filtered by source currency
// @Tags ledger
// @Produce json
// @Param currency query string false "Source currency (KES, USD, NGN or all)"
// @Param order query string false "asc (creation order, default) or desc (newest first)"
// @Success 200 {object} common.Response{data=[]TransactionDTO}
// @Failure 400 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /api/transactions [get]
func ListTransactions(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter money.Code
		if raw := c.Query("currency"); raw != "" && !strings.EqualFold(raw, "all") {
			code, err := money.ParseCode(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid currency filter", err, fiber.StatusBadRequest)
			}
			filter = code
		}
		order := strings.ToLower(c.Query("order", "asc"))
		if order != "asc" && order != "desc" {
			return common.ProblemDetailsJSON(c, "Invalid order",
				errors.New("order must be asc or desc"), fiber.StatusBadRequest)
		}

		txs, err := svc.ListTransactions(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		dtos := make([]TransactionDTO, 0, len(txs))
		for _, tx := range txs {
			if filter != "" && tx.Currency() != filter {
				continue
			}
			dtos = append(dtos, ToTransactionDTO(tx))
		}
		if order == "desc" {
			slices.Reverse(dtos)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched successfully", dtos)
	}
}

// CreateTransfer returns a Fiber handler executing a transfer.
// @Summary Transfer funds
// @Description Move funds between two accounts, converting when their currencies differ
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer request"
// @Success 201 {object} common.Response{data=TransactionDTO}
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /api/transfers [post]
func CreateTransfer(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}

		tx, err := svc.ExecuteTransfer(c.UserContext(), ledgersvc.TransferRequest{
			FromAccountID: input.FromAccountID,
			ToAccountID:   input.ToAccountID,
			Amount:        input.Amount,
			Note:          input.Note,
		})
		if err != nil {
			if account.IsValidationError(err) {
				return common.ProblemDetailsJSON(c, "Transfer rejected", err)
			}
			return common.ProblemDetailsJSON(c, "Transfer failed", err,
				"The transfer could not be completed; no balances were changed")
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", ToTransactionDTO(tx))
	}
}

// Totals returns a Fiber handler reporting the sum of balances per currency.
// @Summary Totals by currency
// @Description Get the sum of all balances for each supported currency
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response{data=[]TotalDTO}
// @Failure 500 {object} common.ProblemDetails
// @Router /api/totals [get]
func Totals(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		totals, err := svc.TotalsByCurrency(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute totals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Totals fetched successfully", ToTotalDTOs(totals))
	}
}

// ListRates returns a Fiber handler listing the exchange rate table.
// @Summary List exchange rates
// @Description Get the fixed rate for every ordered currency pair
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response{data=[]RateDTO}
// @Router /api/rates [get]
func ListRates(rates *currency.RateTable) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched successfully", ToRateDTOs(rates.Rates()))
	}
}
