package xlsxstore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/pkg/errors"
)

var ledgerHeader = []interface{}{
	"Order Name", "Product Name", "Model", "Color", "Quantity", "Date",
	"Unit Price", "Model Fee", "Shipping Fee", "Total Price", "Net Profit", "Status",
}

type ledgerStore struct {
	path    string
	logger  *zap.Logger
	mu      sync.Mutex
	records []*domain.OrderRecord
}

// NewLedgerStore loads the ledger workbook at path, starting empty if
// it does not exist yet.
func NewLedgerStore(path string, logger *zap.Logger) (*ledgerStore, error) {
	s := &ledgerStore{
		path:   path,
		logger: logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ledgerStore) load() error {
	f, err := openWorkbook(s.path)
	if err != nil {
		return &errors.ErrCorruptData{Path: s.path, Err: err}
	}
	if f == nil {
		s.records = nil
		return nil
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return &errors.ErrCorruptData{Path: s.path, Err: err}
	}

	records := make([]*domain.OrderRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		record, err := s.parseRow(row, i+1)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	s.records = records
	return nil
}

func (s *ledgerStore) parseRow(row []string, rowNum int) (*domain.OrderRecord, error) {
	corrupt := func(err error) error {
		return &errors.ErrCorruptData{Path: s.path, Row: rowNum, Err: err}
	}
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	quantity, err := strconv.Atoi(cell(4))
	if err != nil {
		return nil, corrupt(fmt.Errorf("bad quantity %q: %w", cell(4), err))
	}
	date, err := time.Parse(domain.OrderDateFormat, cell(5))
	if err != nil {
		return nil, corrupt(fmt.Errorf("bad date %q: %w", cell(5), err))
	}

	money := make([]decimal.Decimal, 5)
	for i, col := range []int{6, 7, 8, 9, 10} {
		money[i], err = decimal.NewFromString(cell(col))
		if err != nil {
			return nil, corrupt(fmt.Errorf("bad amount %q: %w", cell(col), err))
		}
	}

	status := domain.OrderStatus(cell(11))
	if !status.IsValid() {
		return nil, corrupt(fmt.Errorf("bad status %q", cell(11)))
	}

	return &domain.OrderRecord{
		OrderName:   cell(0),
		ProductName: cell(1),
		Model:       cell(2),
		Color:       cell(3),
		Quantity:    quantity,
		Date:        date,
		UnitPrice:   money[0],
		ModelFee:    money[1],
		ShippingFee: money[2],
		TotalPrice:  money[3],
		NetProfit:   money[4],
		Status:      status,
	}, nil
}

func (s *ledgerStore) save() error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &ledgerHeader); err != nil {
		return err
	}

	for i, record := range s.records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			record.OrderName,
			record.ProductName,
			record.Model,
			record.Color,
			record.Quantity,
			record.Date.Format(domain.OrderDateFormat),
			record.UnitPrice.InexactFloat64(),
			record.ModelFee.InexactFloat64(),
			record.ShippingFee.InexactFloat64(),
			record.TotalPrice.InexactFloat64(),
			record.NetProfit.InexactFloat64(),
			string(record.Status),
		}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return err
		}
	}

	if err := s.formatSheet(f); err != nil {
		return err
	}
	if err := saveWorkbook(f, s.path); err != nil {
		s.logger.Error("Failed to save ledger", zap.Error(err))
		return err
	}
	return nil
}

// formatSheet applies the ledger's presentation: auto-fit columns and a
// solid red fill on refunded rows.
func (s *ledgerStore) formatSheet(f *excelize.File) error {
	if err := autoFitColumns(f, sheetName); err != nil {
		return err
	}

	redFill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FF0000"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, record := range s.records {
		if record.Status != domain.OrderStatusRefunded {
			continue
		}
		first, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(ledgerHeader), i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, first, last, redFill); err != nil {
			return err
		}
	}
	return nil
}

func (s *ledgerStore) List(ctx context.Context) ([]*domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.OrderRecord, len(s.records))
	for i, record := range s.records {
		clone := *record
		out[i] = &clone
	}
	return out, nil
}

func (s *ledgerStore) Append(ctx context.Context, record *domain.OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *record
	s.records = append(s.records, &clone)

	if err := s.save(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}
