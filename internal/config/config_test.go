package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "./data", cfg.Dataset.Path)
	require.Equal(t, 4, cfg.Ingest.Workers)
	require.False(t, cfg.Ingest.SkipMalformed)
	require.Equal(t, "text", cfg.Report.Format)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_FromFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "monieshop.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
dataset:
  path: "/data/2025"
ingest:
  workers: 8
  skip_malformed: true
report:
  format: "json"
server:
  port: 9090
  mode: "debug"
`), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "/data/2025", cfg.Dataset.Path)
	require.Equal(t, 8, cfg.Ingest.Workers)
	require.True(t, cfg.Ingest.SkipMalformed)
	require.Equal(t, "json", cfg.Report.Format)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "monieshop.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
dataset:
  path: "/data/2025"
`), 0o644))

	t.Setenv("MONIESHOP_DATASET__PATH", "/data/override")
	t.Setenv("MONIESHOP_REPORT__FORMAT", "yaml")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "/data/override", cfg.Dataset.Path)
	require.Equal(t, "yaml", cfg.Report.Format)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config file")
}

func TestLoad_InvalidReportFormat(t *testing.T) {
	t.Setenv("MONIESHOP_REPORT__FORMAT", "xml")
	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "report.format")
}

func TestLoad_NegativeWorkers(t *testing.T) {
	t.Setenv("MONIESHOP_INGEST__WORKERS", "-1")
	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ingest.workers")
}
