package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/pkg/errors"
)

// respondError maps engine errors onto HTTP statuses. Validation and
// not-found errors carry enough detail for the caller to re-prompt.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch err.(type) {
	case *errors.ErrValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": err.Error(),
		})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *errors.ErrInsufficientStock:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *errors.ErrEmptyLedger:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *errors.ErrCorruptData:
		logger.Error("Corrupt data store", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt data store"})
	default:
		logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
