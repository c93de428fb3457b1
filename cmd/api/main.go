package main

import (
	"context"
	"fmt"
	"time"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api"
	v1 "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/v1"
	apivalidator "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/validator"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/config"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	errmw "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/error"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/metrics"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/phone"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/service"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/session"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/cloudapi"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/httpclient"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const mediaFetchTimeout = 60 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			validator.New,
			apivalidator.NewXValidator,
			NewNormalizer,

			NewDispatcher,
			service.NewMessageService,
			service.NewStatusReporter,
			v1.NewHandler,
			NewFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, d dispatcher.Dispatcher,
	m *metrics.Metrics, logger *zap.Logger, lc fx.Lifecycle,
) {
	api.SetupRoutes(app, handler, cfg.API.Key, m, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting whatsapp gateway",
				zap.String("port", cfg.API.Port),
				zap.String("provider", cfg.Provider.Mode))
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := d.Disconnect(ctx); err != nil {
				logger.Warn("disconnect on shutdown failed", zap.Error(err))
			}
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewNormalizer(cfg *config.Config) *phone.Normalizer {
	return phone.NewNormalizer(cfg.Phone.DefaultCountryCode)
}

func NewFiberApp(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: errmw.ErrorHandler(logger),
	})
}

func NewDispatcher(cfg *config.Config, logger *zap.Logger) (dispatcher.Dispatcher, error) {
	switch cfg.Provider.Mode {
	case config.ProviderSession:
		factory, err := session.NewStoreFactory(cfg.Provider.Session, logger)
		if err != nil {
			return nil, err
		}
		fetcher := httpclient.NewHTTPClient(mediaFetchTimeout)
		return session.New(cfg.Provider.Session, factory, fetcher, logger), nil
	case config.ProviderCloud, "":
		client := cloudapi.NewClient(cfg.Provider.Cloud, httpclient.NewHTTPClient(cfg.Provider.Cloud.Timeout))
		return dispatcher.NewCloud(client, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider mode %q", cfg.Provider.Mode)
	}
}
