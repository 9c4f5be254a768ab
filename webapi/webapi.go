// Package webapi provides the HTTP API of the ledger.
// It is organized into sub-packages:
//   - ledger: account, transaction, transfer, totals and rate endpoints
//   - common: response envelopes and request helpers
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/fxledger/pkg/app"
	"github.com/amirasaad/fxledger/webapi/common"
	ledgerweb "github.com/amirasaad/fxledger/webapi/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "fxledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
	}))

	if rl := app.Config.RateLimit; rl != nil && rl.MaxRequests > 0 {
		// Uses X-Forwarded-For header when behind a proxy
		// Falls back to X-Real-IP or direct IP if needed
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          rl.MaxRequests,
			Expiration:   rl.Window,
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New(logger.Config{
		Format: "${time} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("fxledger API is running! 🚀")
	})

	if gatherer := app.Deps.MetricsGatherer; gatherer != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	ledgerweb.Routes(fiberApp, app.LedgerService, app.RateTable)
	return fiberApp
}

func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		// Take the first IP in the chain
		if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
			return strings.TrimSpace(forwardedFor[:commaIndex])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
