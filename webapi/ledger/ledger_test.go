package ledger_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/webapi/common"
	ledgerweb "github.com/amirasaad/fxledger/webapi/ledger"
	"github.com/amirasaad/fxledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type LedgerTestSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *LedgerTestSuite) SetupTest() {
	s.app, _ = testutils.NewTestApp(s.T(), nil)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func decode[T any](s *LedgerTestSuite, resp *http.Response) T {
	defer resp.Body.Close() //nolint: errcheck
	var out T
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *LedgerTestSuite) transfer(body string) *http.Response {
	return testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/api/transfers", body)
}

func (s *LedgerTestSuite) balances() map[string]string {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/accounts", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	body := decode[envelope[[]ledgerweb.AccountDTO]](s, resp)
	out := map[string]string{}
	for _, a := range body.Data {
		out[a.ID] = a.Balance + " " + a.Currency
	}
	return out
}

func (s *LedgerTestSuite) TestListAccounts() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/accounts", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	body := decode[envelope[[]ledgerweb.AccountDTO]](s, resp)

	s.Require().Len(body.Data, 4)
	first := body.Data[0]
	s.Equal("A", first.ID)
	s.Equal("Alpha", first.Name)
	s.Equal("USD", first.Currency)
	s.Equal("100.00", first.Balance)
	s.Equal("$100.00", first.Display)
}

func (s *LedgerTestSuite) TestTransfer() {
	s.Run("cross currency", func() {
		resp := s.transfer(`{"from_account_id":"A","to_account_id":"B","amount":"50.00","note":"rent"}`)
		s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
		body := decode[envelope[ledgerweb.TransactionDTO]](s, resp)

		tx := body.Data
		s.Equal("A", tx.FromAccountID)
		s.Equal("Alpha", tx.FromAccountName)
		s.Equal("Bravo", tx.ToAccountName)
		s.Equal("50.00", tx.Amount)
		s.Equal("USD", tx.Currency)
		s.Require().NotNil(tx.ConvertedAmount)
		s.Equal("6489.00", *tx.ConvertedAmount)
		s.Equal("KES", *tx.ConvertedCurrency)
		s.Equal("129.78", *tx.Rate)
		s.Equal("rent", tx.Note)

		balances := s.balances()
		s.Equal("50.00 USD", balances["A"])
		s.Equal("6489.00 KES", balances["B"])
	})

	s.Run("same currency has no conversion", func() {
		resp := s.transfer(`{"from_account_id":"A","to_account_id":"D","amount":"5"}`)
		s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
		body := decode[envelope[ledgerweb.TransactionDTO]](s, resp)
		s.Nil(body.Data.ConvertedAmount)
		s.Nil(body.Data.Rate)
	})
}

func (s *LedgerTestSuite) TestTransferRejections() {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"unknown account", `{"from_account_id":"X","to_account_id":"B","amount":"1"}`, fiber.StatusNotFound, "UNKNOWN_ACCOUNT"},
		{"same account", `{"from_account_id":"A","to_account_id":"A","amount":"1"}`, fiber.StatusBadRequest, "SAME_ACCOUNT"},
		{"invalid amount", `{"from_account_id":"A","to_account_id":"B","amount":"ten"}`, fiber.StatusBadRequest, "INVALID_AMOUNT"},
		{"zero amount", `{"from_account_id":"A","to_account_id":"B","amount":"0"}`, fiber.StatusBadRequest, "NON_POSITIVE_AMOUNT"},
		{"insufficient funds", `{"from_account_id":"D","to_account_id":"B","amount":"10.01"}`, fiber.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{"missing destination", `{"from_account_id":"A","amount":"1"}`, fiber.StatusNotFound, "UNKNOWN_ACCOUNT"},
		{"blank amount", `{"from_account_id":"A","to_account_id":"B","amount":"  "}`, fiber.StatusBadRequest, "INVALID_AMOUNT"},
		{"missing amount", `{"from_account_id":"A","to_account_id":"B"}`, fiber.StatusBadRequest, "INVALID_AMOUNT"},
		{"amount beyond any balance", `{"from_account_id":"A","to_account_id":"B","amount":"1e16"}`, fiber.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{"large negative amount", `{"from_account_id":"A","to_account_id":"B","amount":"-1e16"}`, fiber.StatusBadRequest, "NON_POSITIVE_AMOUNT"},
		{"id too long", `{"from_account_id":"` + strings.Repeat("a", 65) + `","to_account_id":"B","amount":"1"}`, fiber.StatusBadRequest, ""},
		{"note too long", `{"from_account_id":"A","to_account_id":"B","amount":"1","note":"` + strings.Repeat("n", 281) + `"}`, fiber.StatusBadRequest, ""},
		{"malformed json", `{"from_account_id":`, fiber.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			before := s.balances()
			resp := s.transfer(tc.body)
			s.Equal(tc.status, resp.StatusCode)
			s.Equal(common.MIMEProblemJSON, resp.Header.Get(fiber.HeaderContentType))
			pd := decode[common.ProblemDetails](s, resp)
			s.Equal(tc.code, pd.Code)
			s.Equal(before, s.balances())
		})
	}
}

func (s *LedgerTestSuite) TestListTransactions() {
	for _, body := range []string{
		`{"from_account_id":"A","to_account_id":"B","amount":"1"}`,
		`{"from_account_id":"C","to_account_id":"B","amount":"100"}`,
		`{"from_account_id":"D","to_account_id":"A","amount":"2"}`,
	} {
		resp := s.transfer(body)
		s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	list := func(query string) []ledgerweb.TransactionDTO {
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/transactions"+query, "")
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		return decode[envelope[[]ledgerweb.TransactionDTO]](s, resp).Data
	}

	all := list("")
	s.Require().Len(all, 3)
	s.Equal([]string{"A", "C", "D"}, []string{all[0].FromAccountID, all[1].FromAccountID, all[2].FromAccountID})

	desc := list("?order=desc")
	s.Equal("D", desc[0].FromAccountID)

	usd := list("?currency=usd")
	s.Require().Len(usd, 2)
	s.Len(list("?currency=NGN"), 1)
	s.Len(list("?currency=all"), 3)

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/transactions?currency=EUR", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/transactions?order=sideways", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *LedgerTestSuite) TestTotalsAndRates() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/totals", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	totals := decode[envelope[[]ledgerweb.TotalDTO]](s, resp).Data
	s.Require().Len(totals, 3)
	s.Equal(ledgerweb.TotalDTO{Currency: "KES", Amount: "0.00", Display: totals[0].Display}, totals[0])
	s.Equal("110.00", totals[1].Amount)
	s.Equal("5000.00", totals[2].Amount)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/rates", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	rates := decode[envelope[[]ledgerweb.RateDTO]](s, resp).Data
	s.Require().Len(rates, 6)
	s.Equal(ledgerweb.RateDTO{From: "KES", To: "USD", Rate: "0.0077"}, rates[0])
}

func TestTransfer_MissingRate(t *testing.T) {
	app, _ := testutils.NewTestApp(t, nil, func(deps *config.Deps) {
		deps.RateTable = &currency.RateTable{}
	})

	resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/api/transfers",
		`{"from_account_id":"A","to_account_id":"B","amount":"1"}`)
	defer resp.Body.Close() //nolint: errcheck
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "Transfer failed", pd.Title)
	assert.NotContains(t, pd.Detail, "USD")
}
