// @title         job-reviews API
// @version       1.0
// @description   Accounts, session tokens and company reviews.
// @BasePath      /api/auth
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token in the form "Bearer <JWT>".
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/artem13815/jobreviews/api/http"
	"github.com/artem13815/jobreviews/api/http/handlers"
	_ "github.com/artem13815/jobreviews/docs"
	"github.com/artem13815/jobreviews/pkg/auth"
	"github.com/artem13815/jobreviews/pkg/config"
	"github.com/artem13815/jobreviews/pkg/health"
	healthpg "github.com/artem13815/jobreviews/pkg/health/checkers"
	"github.com/artem13815/jobreviews/pkg/logging"
	"github.com/artem13815/jobreviews/pkg/repository/memory"
	pgrepo "github.com/artem13815/jobreviews/pkg/repository/postgres"
	"github.com/artem13815/jobreviews/pkg/review"
	"github.com/artem13815/jobreviews/pkg/security/jwt"
	"github.com/artem13815/jobreviews/pkg/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so returning releases them before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire storage behind the repository ports.
	var (
		userRepo   auth.UserRepository
		reviewRepo review.Repository
		readiness  health.ReadinessUseCase
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		userRepo, reviewRepo = store.Users(), store.Reviews()
		readiness = health.NewService(store)
		log.Warn("using in-memory storage; data is lost on restart")
	default:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pool.Close()
		userRepo = pgrepo.NewUserRepository(pool)
		reviewRepo = pgrepo.NewReviewRepository(pool)
		readiness = health.NewService(healthpg.NewPostgresChecker(pool))
	}

	// The signing secret is read once here and never changes afterwards.
	codec := jwt.NewCodec(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authUC := auth.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), codec)
	reviewUC := review.NewService(reviewRepo)

	app := fiber.New(fiber.Config{
		AppName:               "job-reviews",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: !slices.Contains(cfg.CORSOrigins, "*"),
	}))

	// Register routes
	http.Register(app,
		handlers.NewAuthHandler(authUC, log),
		handlers.NewReviewHandler(reviewUC, log),
		handlers.NewHealthHandler(readiness, log),
		jwt.NewAuthMiddleware(codec, log),
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("HTTP server listening", "port", cfg.Port, "storage", cfg.StorageDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
