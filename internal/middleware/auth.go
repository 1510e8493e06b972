package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

const EnhanceSecretHeader = "X-Enhance-Secret"

// EnhanceSecret admits requests carrying the pre-shared secret, either raw
// in X-Enhance-Secret or as "Bearer <secret>" in Authorization. The custom
// header takes precedence when both are sent. An empty secret admits nothing.
func EnhanceSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(EnhanceSecretHeader)
		if header == "" {
			header = c.GetHeader("Authorization")
		}

		if secret == "" || !(equal(header, secret) || equal(header, "Bearer "+secret)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			return
		}

		c.Next()
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
