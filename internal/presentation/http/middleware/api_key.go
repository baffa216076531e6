package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/apperror"
)

// APIKeyHeader carries the shared secret on every business request
const APIKeyHeader = "X-API-KEY"

// APIKeyMiddleware rejects requests whose X-API-KEY does not match the
// configured key. With no key configured every request fails with 500, since
// that is a deployment defect rather than a client error.
func APIKeyMiddleware(cfg *config.SecurityConfig) gin.HandlerFunc {
	expected := []byte(cfg.APIKey)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			response.AbortWithError(c, apperror.ErrAPIKeyMissing)
			return
		}

		provided := []byte(c.GetHeader(APIKeyHeader))
		if len(provided) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			response.AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		c.Next()
	}
}
