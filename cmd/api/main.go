package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"orion/docs"
	"orion/internal/auth"
	"orion/internal/config"
	"orion/internal/database"
	"orion/internal/database/migration"
	handlers "orion/internal/http/handler"
	"orion/internal/http/middleware"
	"orion/internal/logging"
	"orion/internal/otel"
	"orion/internal/repository/postgres"
	"orion/internal/service"
	"orion/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Orion Forum API
// @version 1.0
// @description Forum backend with topics, posts, comments, subscriptions and JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.Location())

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.AppConfig, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.WithError(err).Warn("tracing_shutdown_failed")
		}
	}()

	// PostgreSQL connection pool, instrumented by otelsql
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	var revoker auth.Revoker
	if cfg.Redis.Addr != "" {
		rr, err := auth.NewRedisRevoker(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rr.Close()
		revoker = rr
	} else {
		log.Warn("REDIS_ADDR not set, access-token revocation is kept in memory")
		revoker = auth.NewMemoryRevoker()
	}

	// Avatars are optional; without object storage the avatar routes answer 503.
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
	}

	userRepo := postgres.NewUserPostgres(db)
	topicRepo := postgres.NewTopicPostgres(db)
	postRepo := postgres.NewPostPostgres(db)
	commentRepo := postgres.NewCommentPostgres(db)
	subRepo := postgres.NewSubscriptionPostgres(db)
	refreshRepo := postgres.NewRefreshTokenPostgres(db)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL())
	refreshSvc := service.NewRefreshTokenService(refreshRepo, cfg.Auth.RefreshTokenTTL())

	svc := handlers.Services{
		Auth:          service.NewAuthService(userRepo, refreshSvc, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, revoker),
		Users:         service.NewUserService(userRepo, objStore, revoker),
		Topics:        service.NewTopicService(topicRepo),
		Posts:         service.NewPostService(postRepo, commentRepo, userRepo, topicRepo),
		Comments:      service.NewCommentService(commentRepo, postRepo),
		Subscriptions: service.NewSubscriptionService(subRepo, topicRepo),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg, "/metrics", "/health", "/healthz")
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    service.MaxAvatarSize + 1<<20,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svc, middleware.RequireAuth(tokens, revoker, log))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", ":"+cfg.Port).Info("server_listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
