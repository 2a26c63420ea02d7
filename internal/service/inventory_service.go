package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/internal/repository"
	"github.com/jafarshop/invman/pkg/errors"
)

// InventoryService is the transactional core. Every operation validates
// first and applies second, so a rejected command leaves both stores
// untouched. Mutating operations are serialized; the system models a
// single user acting one command at a time.
type InventoryService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repos *repository.Repositories, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// AddProduct validates and appends a new product to the catalog,
// returning its id.
func (s *InventoryService) AddProduct(ctx context.Context, input AddProductInput) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := buildModels(input)
	if err != nil {
		return uuid.Nil, err
	}

	product := &domain.Product{
		Name:      input.Name,
		Category:  domain.Category(input.Category),
		ImagePath: input.ImagePath,
		Models:    models,
	}

	id, err := s.repos.Catalog.Append(ctx, product)
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("Product added",
		zap.String("id", id.String()),
		zap.String("name", input.Name),
		zap.String("category", input.Category),
	)
	return id, nil
}

// AddStock increments per-color stock counts. Zero deltas are no-ops.
func (s *InventoryService) AddStock(ctx context.Context, id uuid.UUID, input AddStockInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.repos.Catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for modelName, colors := range input.Adjustments {
		model, ok := product.Models[modelName]
		if !ok {
			return &errors.ErrValidation{Field: "model", Message: fmt.Sprintf("unknown model %q", modelName)}
		}
		for color, delta := range colors {
			if _, ok := model.Colors[color]; !ok {
				return &errors.ErrValidation{Field: "color", Message: fmt.Sprintf("unknown color %q for model %q", color, modelName)}
			}
			if delta < 0 {
				return &errors.ErrValidation{Field: "stock", Message: "stock delta cannot be negative"}
			}
		}
	}

	for modelName, colors := range input.Adjustments {
		for color, delta := range colors {
			product.Models[modelName].Colors[color] += delta
		}
	}

	return s.repos.Catalog.Update(ctx, id, product)
}

// EditProduct replaces the product's name, category, image and full
// model/color set wholesale. Sales counters start over; the edit path
// does not carry them forward.
func (s *InventoryService) EditProduct(ctx context.Context, id uuid.UUID, input AddProductInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	models, err := buildModels(input)
	if err != nil {
		return err
	}

	product := &domain.Product{
		ID:        id,
		Name:      input.Name,
		Category:  domain.Category(input.Category),
		ImagePath: input.ImagePath,
		Models:    models,
	}

	if err := s.repos.Catalog.Update(ctx, id, product); err != nil {
		return err
	}

	s.logger.Info("Product edited", zap.String("id", id.String()), zap.String("name", input.Name))
	return nil
}

// PlaceOrder decrements stock, bumps the sales counters and appends an
// ORDERED ledger record, returning it for receipt display.
func (s *InventoryService) PlaceOrder(ctx context.Context, id uuid.UUID, input PlaceOrderInput) (*domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Quantity <= 0 {
		return nil, &errors.ErrValidation{Field: "quantity", Message: "quantity must be a positive integer"}
	}
	if input.ShippingFee.IsNegative() {
		return nil, &errors.ErrValidation{Field: "shipping_fee", Message: "shipping fee cannot be negative"}
	}

	product, err := s.repos.Catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	model, ok := product.Models[input.Model]
	if !ok {
		return nil, &errors.ErrValidation{Field: "model", Message: fmt.Sprintf("unknown model %q", input.Model)}
	}
	stock, ok := model.Colors[input.Color]
	if !ok {
		return nil, &errors.ErrValidation{Field: "color", Message: fmt.Sprintf("unknown color %q for model %q", input.Color, input.Model)}
	}

	quantity := decimal.NewFromInt(int64(input.Quantity))
	goodsTotal := model.Price.Mul(quantity)

	discounted, err := applyDiscount(goodsTotal, input.DiscountType, input.DiscountValue)
	if err != nil {
		return nil, err
	}

	if input.Quantity > stock {
		return nil, &errors.ErrInsufficientStock{
			Product:   product.Name,
			Model:     input.Model,
			Color:     input.Color,
			Requested: input.Quantity,
			Available: stock,
		}
	}

	orderName := input.OrderName
	if orderName == "" {
		orderName = "No Name"
	}

	record := &domain.OrderRecord{
		OrderName:   orderName,
		ProductName: product.Name,
		Model:       input.Model,
		Color:       input.Color,
		Quantity:    input.Quantity,
		Date:        s.now(),
		UnitPrice:   model.Price,
		ModelFee:    model.Fee,
		ShippingFee: input.ShippingFee,
		TotalPrice:  discounted.Add(input.ShippingFee),
		NetProfit:   model.Price.Sub(model.Fee).Mul(quantity),
		Status:      domain.OrderStatusOrdered,
	}

	before := product.Clone()
	model.Colors[input.Color] -= input.Quantity
	model.UnitsSold += input.Quantity
	model.UnitsSoldByColor[input.Color] += input.Quantity

	if err := s.repos.Catalog.Update(ctx, id, product); err != nil {
		return nil, err
	}
	if err := s.repos.Ledger.Append(ctx, record); err != nil {
		// Put the stock back so the stores stay consistent.
		if rbErr := s.repos.Catalog.Update(ctx, id, before); rbErr != nil {
			s.logger.Error("Failed to roll back stock after ledger failure", zap.Error(rbErr))
		}
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("product", product.Name),
		zap.String("model", input.Model),
		zap.String("color", input.Color),
		zap.Int("quantity", input.Quantity),
	)
	return record, nil
}

// RefundOrder restores stock unconditionally and appends a REFUNDED
// ledger record with negative quantity and net profit. Sales counters
// are left as they are; refunds have never decremented them. The total
// price of a refund is the refunded shipping fee only.
func (s *InventoryService) RefundOrder(ctx context.Context, id uuid.UUID, input RefundOrderInput) (*domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Quantity <= 0 {
		return nil, &errors.ErrValidation{Field: "quantity", Message: "quantity must be a positive integer"}
	}
	if input.ShippingFee.IsNegative() {
		return nil, &errors.ErrValidation{Field: "refund_shipping_fee", Message: "refund shipping fee cannot be negative"}
	}

	product, err := s.repos.Catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	model, ok := product.Models[input.Model]
	if !ok {
		return nil, &errors.ErrValidation{Field: "model", Message: fmt.Sprintf("unknown model %q", input.Model)}
	}
	if _, ok := model.Colors[input.Color]; !ok {
		return nil, &errors.ErrValidation{Field: "color", Message: fmt.Sprintf("unknown color %q for model %q", input.Color, input.Model)}
	}

	now := s.now()
	quantity := decimal.NewFromInt(int64(input.Quantity))

	record := &domain.OrderRecord{
		OrderName:   fmt.Sprintf("Refund-%s-%s", product.Name, now.Format(domain.RefundStampFormat)),
		ProductName: product.Name,
		Model:       input.Model,
		Color:       input.Color,
		Quantity:    -input.Quantity,
		Date:        now,
		UnitPrice:   model.Price,
		ModelFee:    model.Fee,
		ShippingFee: input.ShippingFee,
		TotalPrice:  input.ShippingFee,
		NetProfit:   model.Price.Sub(model.Fee).Mul(quantity).Neg(),
		Status:      domain.OrderStatusRefunded,
	}

	before := product.Clone()
	model.Colors[input.Color] += input.Quantity

	if err := s.repos.Catalog.Update(ctx, id, product); err != nil {
		return nil, err
	}
	if err := s.repos.Ledger.Append(ctx, record); err != nil {
		if rbErr := s.repos.Catalog.Update(ctx, id, before); rbErr != nil {
			s.logger.Error("Failed to roll back stock after ledger failure", zap.Error(rbErr))
		}
		return nil, err
	}

	s.logger.Info("Refund processed",
		zap.String("product", product.Name),
		zap.String("model", input.Model),
		zap.String("color", input.Color),
		zap.Int("quantity", input.Quantity),
	)
	return record, nil
}

// RemoveProduct hard-deletes a product. Past ledger entries keep their
// snapshot of its name and are not touched.
func (s *InventoryService) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Catalog.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product removed", zap.String("id", id.String()))
	return nil
}

// GetProduct returns one product by id.
func (s *InventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repos.Catalog.GetByID(ctx, id)
}

// ListProducts returns the catalog narrowed by the filter. Name and
// model match as case-insensitive substrings, category matches exactly.
func (s *InventoryService) ListProducts(ctx context.Context, filter CatalogFilter) ([]*domain.Product, error) {
	products, err := s.repos.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Product, 0, len(products))
	for _, product := range products {
		if !matchesFilter(product, filter) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered, nil
}

// ListOrders returns the full ledger in append order.
func (s *InventoryService) ListOrders(ctx context.Context) ([]*domain.OrderRecord, error) {
	return s.repos.Ledger.List(ctx)
}

func matchesFilter(product *domain.Product, filter CatalogFilter) bool {
	if filter.Name != "" &&
		!strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Category != "" && string(product.Category) != filter.Category {
		return false
	}
	if filter.Model != "" {
		found := false
		for name := range product.Models {
			if strings.Contains(strings.ToLower(name), strings.ToLower(filter.Model)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// buildModels validates an add/edit payload and builds the model set
// with fresh sales counters.
func buildModels(input AddProductInput) (map[string]*domain.Model, error) {
	if input.Name == "" {
		return nil, &errors.ErrValidation{Field: "name", Message: "name is required"}
	}
	if input.Category == "" {
		return nil, &errors.ErrValidation{Field: "category", Message: "category is required"}
	}
	if !domain.Category(input.Category).IsValid() {
		return nil, &errors.ErrValidation{Field: "category", Message: fmt.Sprintf("unknown category %q", input.Category)}
	}
	if len(input.Models) == 0 {
		return nil, &errors.ErrValidation{Field: "models", Message: "at least one model is required"}
	}

	models := make(map[string]*domain.Model, len(input.Models))
	for name, in := range input.Models {
		if name == "" {
			return nil, &errors.ErrValidation{Field: "models", Message: "model name cannot be empty"}
		}
		if in.Price.IsNegative() {
			return nil, &errors.ErrValidation{Field: "price", Message: fmt.Sprintf("price for model %q cannot be negative", name)}
		}
		if in.Fee.IsNegative() {
			return nil, &errors.ErrValidation{Field: "fee", Message: fmt.Sprintf("fee for model %q cannot be negative", name)}
		}
		if len(in.Colors) == 0 {
			return nil, &errors.ErrValidation{Field: "colors", Message: fmt.Sprintf("model %q needs at least one color/stock pair", name)}
		}

		colors := make(map[string]int, len(in.Colors))
		for color, stock := range in.Colors {
			if color == "" {
				return nil, &errors.ErrValidation{Field: "colors", Message: fmt.Sprintf("model %q has an empty color name", name)}
			}
			if stock < 0 {
				return nil, &errors.ErrValidation{Field: "stock", Message: fmt.Sprintf("stock for %s/%s cannot be negative", name, color)}
			}
			colors[color] = stock
		}

		models[name] = &domain.Model{
			Price:            in.Price,
			Fee:              in.Fee,
			Colors:           colors,
			UnitsSoldByColor: make(map[string]int, len(colors)),
		}
	}
	return models, nil
}

// applyDiscount reduces the goods total by an optional percentage or
// flat discount. Net profit is unaffected; the discount only changes
// what the customer pays.
func applyDiscount(goodsTotal decimal.Decimal, discountType DiscountType, value decimal.Decimal) (decimal.Decimal, error) {
	switch discountType {
	case "", DiscountNone:
		return goodsTotal, nil
	case DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.Zero, &errors.ErrValidation{Field: "discount_value", Message: "percentage discount must be between 0 and 100"}
		}
		fraction := value.Div(decimal.NewFromInt(100))
		return goodsTotal.Sub(goodsTotal.Mul(fraction)), nil
	case DiscountCurrency:
		if value.IsNegative() || value.GreaterThanOrEqual(goodsTotal) {
			return decimal.Zero, &errors.ErrValidation{Field: "discount_value", Message: "currency discount must be less than the total price"}
		}
		return goodsTotal.Sub(value), nil
	default:
		return decimal.Zero, &errors.ErrValidation{Field: "discount_type", Message: fmt.Sprintf("unknown discount type %q", discountType)}
	}
}
