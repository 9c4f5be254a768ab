package main

import (
	"fmt"
	"log/slog"

	_ "github.com/amirasaad/fxledger/docs"
	"github.com/amirasaad/fxledger/infra/initializer"
	"github.com/amirasaad/fxledger/pkg/app"
	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// @title fxledger API
// @version 1.0.0
// @description Multi-currency ledger: accounts, transfers with FX conversion, totals and rates.
// @contact.name API Support
// @license.name MIT
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	fiberApp, err := setup(cfg)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr()
	slog.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}

// setup wires every dependency from cfg and returns the HTTP app.
func setup(cfg *config.App) (*fiber.App, error) {
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return webapi.SetupApp(app.New(deps, cfg)), nil
}
