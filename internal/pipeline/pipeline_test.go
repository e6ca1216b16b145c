package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse/internal/config"
	"lakehouse/internal/gold"
	"lakehouse/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Raw = filepath.Join(dir, "raw")
	cfg.Paths.Bronze = filepath.Join(dir, "bronze")
	cfg.Paths.Silver = filepath.Join(dir, "silver")
	cfg.Paths.Gold = filepath.Join(dir, "gold")
	cfg.Generator = config.Generator{
		Seed:      1,
		Customers: 40,
		Products:  25,
		Orders:    80,
		MaxItems:  4,
	}
	cfg.DimDate = config.DimDate{StartYear: 2023, EndYear: 2024}
	return &cfg
}

func testRunner(cfg *config.Config) *Runner {
	return New(cfg, slog.New(slog.DiscardHandler))
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(cfg)

	err := r.Run(context.Background(), []string{
		StageGenerate, StageBronze, StageSilver, StageGold, StageQuality,
	})
	require.NoError(t, err)

	dims, err := store.ReadTable[gold.DimCustomer](filepath.Join(cfg.Paths.Gold, tableDimCustomer))
	require.NoError(t, err)
	assert.Len(t, dims, cfg.Generator.Customers)

	products, err := store.ReadTable[gold.DimProduct](filepath.Join(cfg.Paths.Gold, tableDimProduct))
	require.NoError(t, err)
	assert.Len(t, products, cfg.Generator.Products)

	// 2023 has 365 days, 2024 has 366.
	dates, err := store.ReadTable[gold.DimDate](filepath.Join(cfg.Paths.Gold, tableDimDate))
	require.NoError(t, err)
	assert.Len(t, dates, 731)

	facts, err := store.ReadTable[gold.FactSales](filepath.Join(cfg.Paths.Gold, tableFactSales))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(facts), cfg.Generator.Orders)
	for _, f := range facts {
		assert.NotZero(t, f.CustomerKey)
		assert.NotZero(t, f.ProductKey)
	}

	daily, err := store.ReadTable[gold.DailySalesSummary](filepath.Join(cfg.Paths.Gold, tableDailySales))
	require.NoError(t, err)
	assert.NotEmpty(t, daily)

	perf, err := store.ReadTable[gold.ProductPerformance](filepath.Join(cfg.Paths.Gold, tableProductPerf))
	require.NoError(t, err)
	assert.NotEmpty(t, perf)
}

// Dirty input must not fail the run when quality gating is disabled.
func TestRunDirtyDataGateDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.DirtyRowPct = 20
	cfg.Generator.DuplicatePct = 10
	cfg.Quality.FailOnError = false
	r := testRunner(cfg)

	err := r.Run(context.Background(), []string{
		StageGenerate, StageBronze, StageSilver, StageGold, StageQuality,
	})
	require.NoError(t, err)
}

// Duplicate source rows collapse to one silver row per natural key.
func TestRunDeduplicates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.DuplicatePct = 50
	cfg.Quality.FailOnError = false
	r := testRunner(cfg)

	err := r.Run(context.Background(), []string{
		StageGenerate, StageBronze, StageSilver, StageGold,
	})
	require.NoError(t, err)

	dims, err := store.ReadTable[gold.DimCustomer](filepath.Join(cfg.Paths.Gold, tableDimCustomer))
	require.NoError(t, err)
	assert.Len(t, dims, cfg.Generator.Customers)
}

func TestRunSkipsUploadWithoutBucket(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(cfg)
	require.NoError(t, r.Run(context.Background(), []string{StageUpload}))
}

func TestRunUnknownStage(t *testing.T) {
	cfg := testConfig(t)
	r := testRunner(cfg)
	err := r.Run(context.Background(), []string{"polish"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage")
}
