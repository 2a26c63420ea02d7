package xlsxstore

import (
	goerrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/config"
	"github.com/jafarshop/invman/internal/repository"
	"github.com/jafarshop/invman/pkg/errors"
)

// NewRepositories opens all three workbook-backed stores. A corrupt
// artifact is moved aside under a .corrupt-<stamp> name and its store
// starts empty, so a bad file never takes the whole process down and is
// never silently overwritten.
func NewRepositories(cfg config.StoreConfig, logger *zap.Logger) (*repository.Repositories, error) {
	catalog, err := NewCatalogStore(cfg.InventoryPath(), logger)
	if err != nil {
		if !quarantineCorrupt(err, cfg.InventoryPath(), logger) {
			return nil, err
		}
		if catalog, err = NewCatalogStore(cfg.InventoryPath(), logger); err != nil {
			return nil, err
		}
	}
	ledger, err := NewLedgerStore(cfg.OrdersPath(), logger)
	if err != nil {
		if !quarantineCorrupt(err, cfg.OrdersPath(), logger) {
			return nil, err
		}
		if ledger, err = NewLedgerStore(cfg.OrdersPath(), logger); err != nil {
			return nil, err
		}
	}
	performance, err := NewPerformanceStore(cfg.PerformancePath(), logger)
	if err != nil {
		if !quarantineCorrupt(err, cfg.PerformancePath(), logger) {
			return nil, err
		}
		if performance, err = NewPerformanceStore(cfg.PerformancePath(), logger); err != nil {
			return nil, err
		}
	}

	return &repository.Repositories{
		Catalog:     catalog,
		Ledger:      ledger,
		Performance: performance,
	}, nil
}

// quarantineCorrupt moves an unparseable workbook aside and reports
// whether the caller should retry with an empty store.
func quarantineCorrupt(err error, path string, logger *zap.Logger) bool {
	var corrupt *errors.ErrCorruptData
	if !goerrors.As(err, &corrupt) {
		return false
	}

	quarantined := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102150405"))
	if renameErr := os.Rename(path, quarantined); renameErr != nil {
		logger.Error("Failed to quarantine corrupt workbook", zap.String("path", path), zap.Error(renameErr))
		return false
	}

	logger.Warn("Corrupt workbook moved aside, starting empty",
		zap.String("path", path),
		zap.String("quarantined", quarantined),
		zap.Error(err),
	)
	return true
}
