package app

import (
	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/pkg/service/ledger"
)

// App holds the services the presentation layer talks to.
type App struct {
	Deps          *config.Deps
	Config        *config.App
	RateTable     *currency.RateTable
	LedgerService *ledger.Service
}

// New builds the services from deps and registers the event handlers.
func New(deps *config.Deps, cfg *config.App, opts ...ledger.Option) *App {
	if deps.Config == nil {
		deps.Config = cfg
	}
	rates := deps.RateTable
	if rates == nil {
		rates = currency.DefaultRateTable()
		deps.RateTable = rates
	}
	app := &App{
		Deps:          deps,
		Config:        cfg,
		RateTable:     rates,
		LedgerService: ledger.NewService(*deps, opts...),
	}
	app.setupEventBus()
	return app
}
