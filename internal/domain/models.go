package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Display formats carried over from the persisted artifacts.
const (
	OrderDateFormat       = "2006-01-02 03:04:05 PM"
	RefundStampFormat     = "20060102150405"
	PerformanceDateFormat = "02/01/2006"
	TrackedOnFormat       = "02/01/2006 03:04:05 PM"
)

// Product represents a catalog item with its purchasable models
type Product struct {
	ID        uuid.UUID
	Name      string
	Category  Category
	ImagePath string
	Models    map[string]*Model
}

// Model represents a purchasable variant of a product with its own
// price, per-unit fee and per-color stock.
type Model struct {
	Price            decimal.Decimal
	Fee              decimal.Decimal
	Colors           map[string]int
	UnitsSold        int
	UnitsSoldByColor map[string]int
}

// OrderRecord is one ledger entry. Records are append-only and capture
// the product/model/color fields as values at transaction time; later
// catalog edits or deletions do not touch them.
type OrderRecord struct {
	OrderName   string
	ProductName string
	Model       string
	Color       string
	Quantity    int
	Date        time.Time
	UnitPrice   decimal.Decimal
	ModelFee    decimal.Decimal
	ShippingFee decimal.Decimal
	TotalPrice  decimal.Decimal
	NetProfit   decimal.Decimal
	Status      OrderStatus
}

// PerformanceSnapshot is a persisted summary of net profit over a
// queried date range. Pure output, never read back into a computation.
type PerformanceSnapshot struct {
	StartDate time.Time
	EndDate   time.Time
	NetProfit decimal.Decimal
	TrackedOn time.Time
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	clone := &Product{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		ImagePath: p.ImagePath,
		Models:    make(map[string]*Model, len(p.Models)),
	}
	for name, model := range p.Models {
		clone.Models[name] = model.Clone()
	}
	return clone
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	clone := &Model{
		Price:            m.Price,
		Fee:              m.Fee,
		Colors:           make(map[string]int, len(m.Colors)),
		UnitsSold:        m.UnitsSold,
		UnitsSoldByColor: make(map[string]int, len(m.UnitsSoldByColor)),
	}
	for color, stock := range m.Colors {
		clone.Colors[color] = stock
	}
	for color, sold := range m.UnitsSoldByColor {
		clone.UnitsSoldByColor[color] = sold
	}
	return clone
}

// ModelNames returns the product's model names in lexicographic order.
// Models live in a map, so callers needing deterministic iteration go
// through here.
func (p *Product) ModelNames() []string {
	names := make([]string, 0, len(p.Models))
	for name := range p.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColorNames returns the model's color names in lexicographic order.
func (m *Model) ColorNames() []string {
	names := make([]string, 0, len(m.Colors))
	for name := range m.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
