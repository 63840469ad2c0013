package web

import (
	"context"
	"flag"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)
	require.Equal(t, "localhost:8086", cfg.HTTPAddr)
	require.Empty(t, cfg.CatalogDBPath)
	require.Empty(t, cfg.PlanetDBPath)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "gemini-2.5-flash", cfg.GenAI.Model)
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("COZY_GALAXY_WEB_HTTP_ADDR", "127.0.0.1:9100")
	t.Setenv("COZY_GALAXY_VISITOR_KEY", "env-visitor-key-0123456789")
	t.Setenv("COZY_GALAXY_GENAI_MODEL", "gemini-test")

	cfg, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), nil)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9100", cfg.HTTPAddr)
	require.Equal(t, "env-visitor-key-0123456789", cfg.VisitorKey)
	require.Equal(t, "gemini-test", cfg.GenAI.Model)
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("COZY_GALAXY_WEB_HTTP_ADDR", "127.0.0.1:9100")

	cfg, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), []string{
		"-http-addr", "127.0.0.1:9002",
		"-catalog-db", "catalog.db",
		"-planet-db", "planets.db",
		"-log-level", "debug",
	})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9002", cfg.HTTPAddr)
	require.Equal(t, "catalog.db", cfg.CatalogDBPath)
	require.Equal(t, "planets.db", cfg.PlanetDBPath)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := ParseConfig(fs, []string{"-nope"})
	require.Error(t, err)
}

func TestNewServerServesWithSQLiteStores(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		HTTPAddr:      "127.0.0.1:0",
		CatalogDBPath: filepath.Join(dir, "catalog.db"),
		PlanetDBPath:  filepath.Join(dir, "planets.db"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	server, closeStores, err := newServer(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeStores()
	require.NoError(t, server.Listen())

	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()

	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + server.Addr() + "/api/communities/bicycle-riders")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"members":621`)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
