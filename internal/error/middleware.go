package middleware

import (
	"errors"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var dispatchErr dispatcher.Error
		if errors.As(err, &dispatchErr) {
			return handleDispatchError(c, logger, dispatchErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"error":   fiberErr.Message,
			})
		}

		logger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleDispatchError(c *fiber.Ctx, logger *zap.Logger, err dispatcher.Error) error {
	status := constants.GetHTTPStatus(err.Code)

	if status >= 500 {
		logger.Error("Dispatch failed",
			zap.String("code", err.Code),
			zap.Error(err.Cause))
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Message(),
	})
}
