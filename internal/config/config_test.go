package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "lakehouse", cfg.Env.ServiceName)
	assert.Equal(t, "data/bronze", cfg.Paths.Bronze)
	assert.Equal(t, "drop", cfg.Fact.OrphanPolicy)
	assert.True(t, cfg.Quality.FailOnError)
	assert.Equal(t, 2020, cfg.DimDate.StartYear)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
paths:
  raw: /tmp/raw
fact:
  orphanPolicy: keep
dimDate:
  startYear: 2022
  endYear: 2024
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/raw", cfg.Paths.Raw)
	// Untouched fields keep defaults.
	assert.Equal(t, "data/silver", cfg.Paths.Silver)
	assert.Equal(t, "keep", cfg.Fact.OrphanPolicy)
	assert.Equal(t, 2022, cfg.DimDate.StartYear)
	assert.Equal(t, 2024, cfg.DimDate.EndYear)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LAKEHOUSE_WAREHOUSE_DSN", "postgres://example/lakehouse")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://example/lakehouse", cfg.Warehouse.DSN)
}

func TestLoad_EnvOverridesCamelCaseFileKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
dimDate:
  startYear: 2022
  endYear: 2024
quality:
  failOnError: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("LAKEHOUSE_DIMDATE_STARTYEAR", "2023")
	t.Setenv("LAKEHOUSE_QUALITY_FAILONERROR", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	// Env wins over the file for the same key, regardless of key casing.
	assert.Equal(t, 2023, cfg.DimDate.StartYear)
	assert.Equal(t, 2024, cfg.DimDate.EndYear)
	assert.False(t, cfg.Quality.FailOnError)
}

func TestCanonicalEnvKey(t *testing.T) {
	existing := map[string]any{
		"dimDate": map[string]any{"startYear": 2022},
		"paths":   map[string]any{"raw": "data/raw"},
	}
	assert.Equal(t, "dimDate.startYear", canonicalEnvKey("LAKEHOUSE_DIMDATE_STARTYEAR", existing))
	assert.Equal(t, "paths.raw", canonicalEnvKey("LAKEHOUSE_PATHS_RAW", existing))
	// Keys the file never set fall back to the lower-cased path.
	assert.Equal(t, "warehouse.dsn", canonicalEnvKey("LAKEHOUSE_WAREHOUSE_DSN", existing))
	assert.Equal(t, "dimDate.endyear", canonicalEnvKey("LAKEHOUSE_DIMDATE_ENDYEAR", existing))
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fact:\n  orphanPolicy: explode\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_RejectsReversedYearRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dimDate:\n  startYear: 2025\n  endYear: 2020\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
