package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/metrics"
	promcollector "github.com/amirasaad/fxledger/pkg/metrics/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig() *config.App {
	return &config.App{
		Ledger:  &config.Ledger{},
		Metrics: &config.Metrics{Enabled: true, Namespace: "fxledger"},
	}
}

func TestInitialize_Defaults(t *testing.T) {
	t.Parallel()
	deps, err := initialize(testConfig(), discard)
	require.NoError(t, err)

	require.NotNil(t, deps.Uow)
	require.NotNil(t, deps.EventBus)
	require.NotNil(t, deps.RateTable)
	assert.IsType(t, &promcollector.Collector{}, deps.Metrics)
	require.NotNil(t, deps.MetricsGatherer)

	accounts, err := deps.Uow.AccountRepository()
	require.NoError(t, err)
	list, err := accounts.List()
	require.NoError(t, err)
	assert.Len(t, list, 10)

	families, err := deps.MetricsGatherer.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestInitialize_MetricsDisabled(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	deps, err := initialize(cfg, discard)
	require.NoError(t, err)
	assert.Equal(t, metrics.NoOpCollector{}, deps.Metrics)
	assert.Nil(t, deps.MetricsGatherer)
}

func TestInitialize_SeedFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name,currency,balance\nA,Alpha,USD,1\n"), 0o600))
	cfg := testConfig()
	cfg.Ledger.SeedFile = path

	deps, err := initialize(cfg, discard)
	require.NoError(t, err)
	accounts, err := deps.Uow.AccountRepository()
	require.NoError(t, err)
	list, err := accounts.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].ID)
}

func TestInitialize_BadSeedFile(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Ledger.SeedFile = filepath.Join(t.TempDir(), "missing.csv")

	_, err := initialize(cfg, discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load account seed")
}

func TestNewLogger_Formats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Prefix: "[fxledger]"})
	logger.Info("transfer completed", "transaction_id", "abc")

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), out)
	assert.Contains(t, out, `"transaction_id":"abc"`)
	assert.Contains(t, out, "transfer completed")

	buf.Reset()
	logger = newLogger(&buf, &config.Log{Level: int(slog.LevelWarn)})
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
