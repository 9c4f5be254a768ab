// Package testutils builds a fully wired HTTP app over an in-memory ledger
// for handler tests.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infra_eventbus "github.com/amirasaad/fxledger/infra/eventbus"
	infra_repository "github.com/amirasaad/fxledger/infra/repository"
	"github.com/amirasaad/fxledger/pkg/app"
	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/amirasaad/fxledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Seed returns the accounts the test app starts with:
// A USD 100.00, B KES 0.00, C NGN 5000.00, D USD 10.00.
func Seed(t testing.TB) []*account.Account {
	t.Helper()
	specs := []struct {
		id, name, amount string
		code             money.Code
	}{
		{"A", "Alpha", "100.00", money.USD},
		{"B", "Bravo", "0.00", money.KES},
		{"C", "Charlie", "5000.00", money.NGN},
		{"D", "Delta", "10.00", money.USD},
	}
	out := make([]*account.Account, 0, len(specs))
	for _, s := range specs {
		a, err := account.New(s.id, s.name, money.Must(decimal.RequireFromString(s.amount), s.code))
		require.NoError(t, err)
		out = append(out, a)
	}
	return out
}

// TestConfig returns a configuration suitable for tests: no rate limiting
// and metrics disabled.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text"},
		RateLimit: &config.RateLimit{},
		Ledger:    &config.Ledger{},
		Metrics:   &config.Metrics{},
	}
}

// NewTestApp wires the HTTP app over a fresh in-memory ledger seeded by Seed.
// deps may be adjusted by mutate before the app is built.
func NewTestApp(t testing.TB, cfg *config.App, mutate ...func(*config.Deps)) (*fiber.App, *app.App) {
	t.Helper()
	if cfg == nil {
		cfg = TestConfig()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := infra_repository.NewStore(Seed(t))
	require.NoError(t, err)

	deps := &config.Deps{
		Uow:      infra_repository.NewUoW(store),
		EventBus: infra_eventbus.NewWithMemory(logger),
		Logger:   logger,
		Config:   cfg,
	}
	for _, m := range mutate {
		m(deps)
	}
	a := app.New(deps, cfg)
	return webapi.SetupApp(a), a
}

// MakeRequest sends a request through app and returns the response.
func MakeRequest(t testing.TB, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp
}
