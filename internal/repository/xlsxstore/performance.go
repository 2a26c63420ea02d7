package xlsxstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/pkg/errors"
)

var performanceHeader = []interface{}{"Start Date", "End Date", "Net Profit", "Tracked On"}

type performanceStore struct {
	path      string
	logger    *zap.Logger
	mu        sync.Mutex
	snapshots []*domain.PerformanceSnapshot
}

// NewPerformanceStore loads the performance workbook at path, starting
// empty if it does not exist yet.
func NewPerformanceStore(path string, logger *zap.Logger) (*performanceStore, error) {
	s := &performanceStore{
		path:   path,
		logger: logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *performanceStore) load() error {
	f, err := openWorkbook(s.path)
	if err != nil {
		return &errors.ErrCorruptData{Path: s.path, Err: err}
	}
	if f == nil {
		s.snapshots = nil
		return nil
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return &errors.ErrCorruptData{Path: s.path, Err: err}
	}

	snapshots := make([]*domain.PerformanceSnapshot, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		snapshot, err := s.parseRow(row, i+1)
		if err != nil {
			return err
		}
		snapshots = append(snapshots, snapshot)
	}

	s.snapshots = snapshots
	return nil
}

func (s *performanceStore) parseRow(row []string, rowNum int) (*domain.PerformanceSnapshot, error) {
	corrupt := func(err error) error {
		return &errors.ErrCorruptData{Path: s.path, Row: rowNum, Err: err}
	}
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	start, err := time.Parse(domain.PerformanceDateFormat, cell(0))
	if err != nil {
		return nil, corrupt(fmt.Errorf("bad start date %q: %w", cell(0), err))
	}
	end, err := time.Parse(domain.PerformanceDateFormat, cell(1))
	if err != nil {
		return nil, corrupt(fmt.Errorf("bad end date %q: %w", cell(1), err))
	}
	netProfit, err := decimal.NewFromString(cell(2))
	if err != nil {
		return nil, corrupt(fmt.Errorf("bad net profit %q: %w", cell(2), err))
	}
	trackedOn, err := time.Parse(domain.TrackedOnFormat, cell(3))
	if err != nil {
		return nil, corrupt(fmt.Errorf("bad tracked-on %q: %w", cell(3), err))
	}

	return &domain.PerformanceSnapshot{
		StartDate: start,
		EndDate:   end,
		NetProfit: netProfit,
		TrackedOn: trackedOn,
	}, nil
}

func (s *performanceStore) save() error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &performanceHeader); err != nil {
		return err
	}

	for i, snapshot := range s.snapshots {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			snapshot.StartDate.Format(domain.PerformanceDateFormat),
			snapshot.EndDate.Format(domain.PerformanceDateFormat),
			snapshot.NetProfit.InexactFloat64(),
			snapshot.TrackedOn.Format(domain.TrackedOnFormat),
		}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return err
		}
	}

	if err := autoFitColumns(f, sheetName); err != nil {
		return err
	}
	if err := saveWorkbook(f, s.path); err != nil {
		s.logger.Error("Failed to save performance log", zap.Error(err))
		return err
	}
	return nil
}

func (s *performanceStore) List(ctx context.Context) ([]*domain.PerformanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.PerformanceSnapshot, len(s.snapshots))
	for i, snapshot := range s.snapshots {
		clone := *snapshot
		out[i] = &clone
	}
	return out, nil
}

func (s *performanceStore) Append(ctx context.Context, snapshot *domain.PerformanceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *snapshot
	s.snapshots = append(s.snapshots, &clone)

	if err := s.save(); err != nil {
		s.snapshots = s.snapshots[:len(s.snapshots)-1]
		return err
	}
	return nil
}
