package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthMiddleware checks the bearer API key against the configured
// bcrypt hash. An empty hash disables auth entirely; a desktop install
// with no key configured runs open on localhost.
func AuthMiddleware(keyHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := strings.TrimPrefix(header, prefix)
		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			logger.Warn("Rejected API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
