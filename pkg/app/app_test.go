package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/fxledger/infra/eventbus"
	memrepo "github.com/amirasaad/fxledger/infra/repository"
	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/amirasaad/fxledger/pkg/service/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCollector struct {
	balances map[money.Code]float64
}

func (c *recordingCollector) RecordTransfer(money.Code, money.Code, string, time.Duration) {}

func (c *recordingCollector) RecordMissingRate(money.Code, money.Code) {}

func (c *recordingCollector) RecordBalance(code money.Code, total float64) {
	c.balances[code] = total
}

func TestNew_RefreshesBalanceGauges(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := account.New("A", "Alpha", money.Must(decimal.NewFromInt(100), money.USD))
	require.NoError(t, err)
	b, err := account.New("B", "Bravo", money.Must(decimal.Zero, money.KES))
	require.NoError(t, err)
	store, err := memrepo.NewStore([]*account.Account{a, b})
	require.NoError(t, err)

	collector := &recordingCollector{balances: map[money.Code]float64{}}
	deps := &config.Deps{
		Uow:      memrepo.NewUoW(store),
		EventBus: eventbus.NewWithMemory(logger),
		Metrics:  collector,
		Logger:   logger,
	}
	app := New(deps, &config.App{})

	require.NotNil(t, app.LedgerService)
	require.NotNil(t, app.RateTable)
	assert.Equal(t, map[money.Code]float64{money.USD: 100, money.KES: 0, money.NGN: 0}, collector.balances)

	_, err = app.LedgerService.ExecuteTransfer(context.Background(), ledger.TransferRequest{
		FromAccountID: "A", ToAccountID: "B", Amount: "50",
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, collector.balances[money.USD])
	assert.Equal(t, 6489.0, collector.balances[money.KES])
}
