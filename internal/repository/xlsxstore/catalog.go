package xlsxstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/pkg/errors"
)

var catalogHeader = []interface{}{"ID", "Item Name", "Category", "Data", "Image Path"}

// modelBlob is the JSON shape of one model inside the catalog's Data
// column. The blob is parsed, never evaluated.
type modelBlob struct {
	Price           decimal.Decimal `json:"Price"`
	Fee             decimal.Decimal `json:"Fee"`
	Colors          map[string]int  `json:"Colors"`
	UnitsSold       int             `json:"Units Sold"`
	UnitsSoldColors map[string]int  `json:"Units Sold Colors"`
}

type catalogStore struct {
	path     string
	logger   *zap.Logger
	mu       sync.Mutex
	products []*domain.Product
}

// NewCatalogStore loads the catalog workbook at path, starting empty if
// it does not exist yet.
func NewCatalogStore(path string, logger *zap.Logger) (*catalogStore, error) {
	s := &catalogStore{
		path:   path,
		logger: logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *catalogStore) load() error {
	f, err := openWorkbook(s.path)
	if err != nil {
		return &errors.ErrCorruptData{Path: s.path, Err: err}
	}
	if f == nil {
		s.products = nil
		return nil
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return &errors.ErrCorruptData{Path: s.path, Err: err}
	}

	products := make([]*domain.Product, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 {
			continue
		}
		product, err := s.parseRow(row, i+1)
		if err != nil {
			return err
		}
		products = append(products, product)
	}

	s.products = products
	return nil
}

func (s *catalogStore) parseRow(row []string, rowNum int) (*domain.Product, error) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	if cell(3) == "" {
		return nil, &errors.ErrCorruptData{
			Path: s.path,
			Row:  rowNum,
			Err:  fmt.Errorf("missing Data cell"),
		}
	}

	var blobs map[string]modelBlob
	if err := json.Unmarshal([]byte(cell(3)), &blobs); err != nil {
		return nil, &errors.ErrCorruptData{Path: s.path, Row: rowNum, Err: err}
	}

	id, err := uuid.Parse(cell(0))
	if err != nil {
		// Rows written before ids existed get one assigned on load.
		id = uuid.New()
	}

	product := &domain.Product{
		ID:        id,
		Name:      cell(1),
		Category:  domain.Category(cell(2)),
		ImagePath: cell(4),
		Models:    make(map[string]*domain.Model, len(blobs)),
	}
	for name, blob := range blobs {
		model := &domain.Model{
			Price:            blob.Price,
			Fee:              blob.Fee,
			Colors:           blob.Colors,
			UnitsSold:        blob.UnitsSold,
			UnitsSoldByColor: blob.UnitsSoldColors,
		}
		if model.Colors == nil {
			model.Colors = map[string]int{}
		}
		if model.UnitsSoldByColor == nil {
			model.UnitsSoldByColor = map[string]int{}
		}
		product.Models[name] = model
	}
	return product, nil
}

func (s *catalogStore) save() error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &catalogHeader); err != nil {
		return err
	}

	for i, product := range s.products {
		blobs := make(map[string]modelBlob, len(product.Models))
		for name, model := range product.Models {
			blobs[name] = modelBlob{
				Price:           model.Price,
				Fee:             model.Fee,
				Colors:          model.Colors,
				UnitsSold:       model.UnitsSold,
				UnitsSoldColors: model.UnitsSoldByColor,
			}
		}
		data, err := json.Marshal(blobs)
		if err != nil {
			return fmt.Errorf("encoding model data for %s: %w", product.Name, err)
		}

		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			product.ID.String(),
			product.Name,
			string(product.Category),
			string(data),
			product.ImagePath,
		}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return err
		}
	}

	if err := autoFitColumns(f, sheetName); err != nil {
		return err
	}
	if err := saveWorkbook(f, s.path); err != nil {
		s.logger.Error("Failed to save catalog", zap.Error(err))
		return err
	}
	return nil
}

func (s *catalogStore) List(ctx context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Product, len(s.products))
	for i, product := range s.products {
		out[i] = product.Clone()
	}
	return out, nil
}

func (s *catalogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range s.products {
		if product.ID == id {
			return product.Clone(), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (s *catalogStore) Append(ctx context.Context, product *domain.Product) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products = append(s.products, product.Clone())

	if err := s.save(); err != nil {
		s.products = s.products[:len(s.products)-1]
		return uuid.Nil, err
	}
	return product.ID, nil
}

func (s *catalogStore) Update(ctx context.Context, id uuid.UUID, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID != id {
			continue
		}
		updated := product.Clone()
		updated.ID = id
		s.products[i] = updated

		if err := s.save(); err != nil {
			s.products[i] = existing
			return err
		}
		return nil
	}
	return &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (s *catalogStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID != id {
			continue
		}
		s.products = append(s.products[:i:i], s.products[i+1:]...)

		if err := s.save(); err != nil {
			restored := make([]*domain.Product, 0, len(s.products)+1)
			restored = append(restored, s.products[:i]...)
			restored = append(restored, existing)
			restored = append(restored, s.products[i:]...)
			s.products = restored
			return err
		}
		return nil
	}
	return &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (s *catalogStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}
