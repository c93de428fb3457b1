package api

import (
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/middleware"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/v1"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/metrics"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, apiKey string, m *metrics.Metrics, logger *zap.Logger) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	group := app.Group("/api/whatsapp", middleware.APIKey(apiKey, logger))
	group.Post("/initialize", handler.Initialize)
	group.Get("/status", handler.Status)
	group.Get("/qr", handler.QR)
	group.Post("/send", handler.Send)
	group.Post("/send-media", handler.SendMedia)
	group.Post("/send-template", handler.SendTemplate)
	group.Post("/send-link", handler.SendLink)
	group.Post("/disconnect", handler.Disconnect)
}
