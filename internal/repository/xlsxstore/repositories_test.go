package xlsxstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/config"
)

func testStoreConfig(t *testing.T) config.StoreConfig {
	t.Helper()
	return config.StoreConfig{
		DataDir:         t.TempDir(),
		InventoryFile:   "inventory.xlsx",
		OrdersFile:      "orders.xlsx",
		PerformanceFile: "performance.xlsx",
	}
}

func TestNewRepositoriesStartsEmpty(t *testing.T) {
	repos, err := NewRepositories(testStoreConfig(t), zap.NewNop())
	require.NoError(t, err)

	products, err := repos.Catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	records, err := repos.Ledger.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewRepositoriesQuarantinesCorruptWorkbook(t *testing.T) {
	cfg := testStoreConfig(t)

	// Not a workbook at all.
	require.NoError(t, os.WriteFile(cfg.InventoryPath(), []byte("garbage"), 0o644))

	repos, err := NewRepositories(cfg, zap.NewNop())
	require.NoError(t, err)

	products, err := repos.Catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	// The bad file was moved aside, not overwritten.
	entries, err := os.ReadDir(cfg.DataDir)
	require.NoError(t, err)

	quarantined := false
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "inventory.xlsx.corrupt-") {
			quarantined = true
			data, err := os.ReadFile(filepath.Join(cfg.DataDir, entry.Name()))
			require.NoError(t, err)
			assert.Equal(t, "garbage", string(data))
		}
	}
	assert.True(t, quarantined, "corrupt workbook should be quarantined")
}
