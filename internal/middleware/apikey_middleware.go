package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/courseapi/internal/app/models/dto"
)

// APIKeyHeader carries the shared secret every client must present
const APIKeyHeader = "X-Edx-Api-Key"

// APIKeyAuth rejects requests whose X-Edx-Api-Key header does not match
// the configured shared secret. The comparison is constant time.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(APIKeyHeader)
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidAPIKey, "Invalid or missing API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
