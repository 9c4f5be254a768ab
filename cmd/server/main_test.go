package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestSetup_ServesSeededLedger(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "8")

	cfg, err := config.Load(".env")
	require.NoError(t, err)

	app, err := setup(cfg)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/accounts", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 10)
}

func TestSetup_SeedFileFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	seed := "id,name,currency,balance\nX,Xray,USD,1.00\nY,Yankee,KES,2.00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.csv"), []byte(seed), 0o600))
	env := "LEDGER_SEED_FILE=" + filepath.Join(dir, "seed.csv") + "\nMETRICS_ENABLED=false\nLOG_LEVEL=8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("LEDGER_SEED_FILE", "")
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LEDGER_SEED_FILE")
	os.Unsetenv("METRICS_ENABLED")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := config.Load(".env")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "seed.csv"), cfg.Ledger.SeedFile)

	app, err := setup(cfg)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/accounts", nil))
	require.NoError(t, err)
	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
}

func TestSetup_BadSeedFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEDGER_SEED_FILE", "does-not-exist.csv")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "8")

	cfg, err := config.Load(".env")
	require.NoError(t, err)

	_, err = setup(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize dependencies")
}
