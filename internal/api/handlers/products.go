package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/internal/service"
)

// ModelResponse represents one model of a product
type ModelResponse struct {
	Price            float64        `json:"price"`
	Fee              float64        `json:"fee"`
	Colors           map[string]int `json:"colors"`
	UnitsSold        int            `json:"units_sold"`
	UnitsSoldByColor map[string]int `json:"units_sold_by_color"`
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Category  string                   `json:"category"`
	ImagePath string                   `json:"image_path,omitempty"`
	Models    map[string]ModelResponse `json:"models"`
}

func toProductResponse(product *domain.Product) ProductResponse {
	models := make(map[string]ModelResponse, len(product.Models))
	for name, model := range product.Models {
		models[name] = ModelResponse{
			Price:            model.Price.InexactFloat64(),
			Fee:              model.Fee.InexactFloat64(),
			Colors:           model.Colors,
			UnitsSold:        model.UnitsSold,
			UnitsSoldByColor: model.UnitsSoldByColor,
		}
	}
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Category:  string(product.Category),
		ImagePath: product.ImagePath,
		Models:    models,
	}
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := service.CatalogFilter{
			Name:     c.Query("name"),
			Model:    c.Query("model"),
			Category: c.Query("category"),
		}

		products, err := inventory.ListProducts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, product := range products {
			responses[i] = toProductResponse(product)
		}
		c.JSON(http.StatusOK, gin.H{"products": responses})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		product, err := inventory.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleAddProduct handles POST /v1/products
func HandleAddProduct(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AddProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		id, err := inventory.AddProduct(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id.String()})
	}
}

// HandleEditProduct handles PUT /v1/products/:id
func HandleEditProduct(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.AddProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := inventory.EditProduct(c.Request.Context(), id, req); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.String()})
	}
}

// HandleRemoveProduct handles DELETE /v1/products/:id
func HandleRemoveProduct(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		if err := inventory.RemoveProduct(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleAddStock handles POST /v1/products/:id/stock
func HandleAddStock(inventory *service.InventoryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req service.AddStockInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := inventory.AddStock(c.Request.Context(), id, req); err != nil {
			respondError(c, logger, err)
			return
		}

		product, err := inventory.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(product))
	}
}
