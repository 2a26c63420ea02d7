package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/internal/service"
)

// OrderRecordResponse represents one ledger entry
type OrderRecordResponse struct {
	OrderName   string  `json:"order_name"`
	ProductName string  `json:"product_name"`
	Model       string  `json:"model"`
	Color       string  `json:"color"`
	Quantity    int     `json:"quantity"`
	Date        string  `json:"date"`
	UnitPrice   float64 `json:"unit_price"`
	ModelFee    float64 `json:"model_fee"`
	ShippingFee float64 `json:"shipping_fee"`
	TotalPrice  float64 `json:"total_price"`
	NetProfit   float64 `json:"net_profit"`
	Status      string  `json:"status"`
}

func toOrderRecordResponse(record *domain.OrderRecord) OrderRecordResponse {
	return OrderRecordResponse{
		OrderName:   record.OrderName,
		ProductName: record.ProductName,
		Model:       record.Model,
		Color:       record.Color,
		Quantity:    record.Quantity,
		Date:        record.Date.Format(domain.OrderDateFormat),
		UnitPrice:   record.UnitPrice.InexactFloat64(),
		ModelFee:    record.ModelFee.InexactFloat64(),
		ShippingFee: record.ShippingFee.InexactFloat64(),
		TotalPrice:  record.TotalPrice.InexactFloat64(),
		NetProfit:   record.NetProfit.InexactFloat64(),
		Status:      string(record.Status),
	}
}

// HandlePlaceOrder handles POST /v1/products/:id/orders
func HandlePlaceOrder(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.PlaceOrderInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		record, err := inventory.PlaceOrder(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, toOrderRecordResponse(record))
	}
}

// HandleRefundOrder handles POST /v1/products/:id/refunds
func HandleRefundOrder(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.RefundOrderInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		record, err := inventory.RefundOrder(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, toOrderRecordResponse(record))
	}
}

// HandleListOrders handles GET /v1/orders
func HandleListOrders(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := inventory.ListOrders(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]OrderRecordResponse, len(records))
		for i, record := range records {
			responses[i] = toOrderRecordResponse(record)
		}
		c.JSON(http.StatusOK, gin.H{"orders": responses})
	}
}
