package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/fxledger/webapi/common"
	ledgerweb "github.com/amirasaad/fxledger/webapi/ledger"
	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

// apiError is a problem details document returned by the server.
type apiError struct {
	common.ProblemDetails
	Errors []common.FieldError `json:"errors,omitempty"`
}

func (e *apiError) Error() string {
	var b strings.Builder
	b.WriteString(e.Title)
	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	for _, fe := range e.Errors {
		fmt.Fprintf(&b, "\n  %s: %s", fe.Field, fe.Message)
	}
	return b.String()
}

// client calls the fxledger HTTP API.
type client struct {
	base string
}

func newClient(base string) *client {
	return &client{base: strings.TrimRight(base, "/")}
}

func (c *client) accounts() ([]ledgerweb.AccountDTO, error) {
	var out []ledgerweb.AccountDTO
	return out, c.do(fiber.Get(c.base+"/api/accounts"), &out)
}

func (c *client) transactions(currency string, newestFirst bool) ([]ledgerweb.TransactionDTO, error) {
	q := url.Values{}
	if currency != "" {
		q.Set("currency", currency)
	}
	if newestFirst {
		q.Set("order", "desc")
	}
	a := fiber.Get(c.base + "/api/transactions")
	if len(q) > 0 {
		a.QueryString(q.Encode())
	}
	var out []ledgerweb.TransactionDTO
	return out, c.do(a, &out)
}

func (c *client) transfer(req ledgerweb.TransferRequest) (*ledgerweb.TransactionDTO, error) {
	var out ledgerweb.TransactionDTO
	if err := c.do(fiber.Post(c.base+"/api/transfers").JSON(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) totals() ([]ledgerweb.TotalDTO, error) {
	var out []ledgerweb.TotalDTO
	return out, c.do(fiber.Get(c.base+"/api/totals"), &out)
}

func (c *client) rates() ([]ledgerweb.RateDTO, error) {
	var out []ledgerweb.RateDTO
	return out, c.do(fiber.Get(c.base+"/api/rates"), &out)
}

// do sends the request and decodes the data field of the response envelope
// into out. Error responses are returned as *apiError.
func (c *client) do(a *fiber.Agent, out any) error {
	code, body, errs := a.Timeout(requestTimeout).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("cannot reach %s: %w", c.base, errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		var problem apiError
		if err := json.Unmarshal(body, &problem); err != nil || problem.Title == "" {
			return fmt.Errorf("unexpected response %d from %s", code, c.base)
		}
		if problem.Status == 0 {
			problem.Status = code
		}
		return &problem
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
