package service

import "github.com/shopspring/decimal"

// DiscountType selects how an optional order discount is applied
type DiscountType string

const (
	DiscountNone       DiscountType = "None"
	DiscountPercentage DiscountType = "Percentage"
	DiscountCurrency   DiscountType = "Currency"
)

// ModelInput describes one purchasable model of a product
type ModelInput struct {
	Price  decimal.Decimal `json:"price"`
	Fee    decimal.Decimal `json:"fee"`
	Colors map[string]int  `json:"colors"`
}

// AddProductInput is the payload for adding or editing a product
type AddProductInput struct {
	Name      string                `json:"name"`
	Category  string                `json:"category"`
	ImagePath string                `json:"image_path"`
	Models    map[string]ModelInput `json:"models"`
}

// AddStockInput maps model name to color name to a non-negative delta
type AddStockInput struct {
	Adjustments map[string]map[string]int `json:"adjustments"`
}

// PlaceOrderInput is the payload for placing an order
type PlaceOrderInput struct {
	Model         string          `json:"model"`
	Color         string          `json:"color"`
	Quantity      int             `json:"quantity"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	OrderName     string          `json:"order_name"`
	DiscountType  DiscountType    `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// RefundOrderInput is the payload for refunding units of a product
type RefundOrderInput struct {
	Model       string          `json:"model"`
	Color       string          `json:"color"`
	Quantity    int             `json:"quantity"`
	ShippingFee decimal.Decimal `json:"refund_shipping_fee"`
}

// CatalogFilter narrows product listings. Empty fields match everything.
type CatalogFilter struct {
	Name     string
	Model    string
	Category string
}

// SellerEntry is one (product, model, color) triple with its cumulative
// units sold.
type SellerEntry struct {
	Product   string `json:"product"`
	Model     string `json:"model"`
	Color     string `json:"color"`
	UnitsSold int    `json:"units_sold"`
}

// SellerReport holds the best and worst selling triples
type SellerReport struct {
	Best  []SellerEntry `json:"best"`
	Worst []SellerEntry `json:"worst"`
}
