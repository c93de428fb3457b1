package middleware

import (
	"crypto/subtle"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const apiKeyHeader = "X-API-Key"

// APIKey guards a route group with a shared secret. The key is accepted from
// the X-API-Key header or the api_key query parameter.
func APIKey(secret string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			logger.Error("API key is not configured; rejecting request",
				zap.String("path", c.Path()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   constants.GetErrorMessage(constants.ErrCodeAPIKeyNotSet),
			})
		}

		key := c.Get(apiKeyHeader)
		if key == "" {
			key = c.Query("api_key")
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			logger.Warn("Rejected request with invalid API key",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   constants.GetErrorMessage(constants.ErrCodeUnauthorized),
			})
		}

		return c.Next()
	}
}
