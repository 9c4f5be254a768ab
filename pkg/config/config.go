package config

import (
	"fmt"
	"time"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fxledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// Addr returns the host:port pair the HTTP server listens on.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// URL returns the base URL clients use to reach the server.
func (s *Server) URL() string {
	return fmt.Sprintf("%s://%s", s.Scheme, s.Addr())
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Ledger configures the seed data and totals strategy of the ledger.
type Ledger struct {
	// SeedFile is a CSV of accounts to start with. Empty means the embedded seed.
	SeedFile      string `envconfig:"SEED_FILE"`
	RunningTotals bool   `envconfig:"RUNNING_TOTALS" default:"false"`
}

type Metrics struct {
	Enabled   bool   `envconfig:"ENABLED" default:"true"`
	Namespace string `envconfig:"NAMESPACE" default:"fxledger"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Ledger    *Ledger    `envconfig:"LEDGER"`
	Metrics   *Metrics   `envconfig:"METRICS"`
}
