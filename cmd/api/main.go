package main

import (
	"context"
	"database/sql"
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
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"docvault/docs"
	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/form"
	handlers "docvault/internal/http/handler"
	"docvault/internal/http/middleware"
	"docvault/internal/logging"
	"docvault/internal/otel"
	"docvault/internal/repository"
	"docvault/internal/repository/memory"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/internal/storage"
)

// @title Document Vault API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logging.Component(log, "otel"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	var (
		db      *sql.DB
		users   repository.UserRepository
		docRepo repository.DocumentRepository
	)
	if cfg.Database.Enabled() {
		db, err = database.Open(ctx, cfg.Database, logging.Component(log, "database"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		users = postgres.NewUserPostgres(db)
		docRepo = postgres.NewDocumentPostgres(db)
	} else {
		log.Info().Str("event", "memory_mode").Msg("DB_HOST not set, using in-memory repositories")
		users = memory.NewUserStore()
		docRepo = memory.NewDocumentStore(memory.SeedDocuments()...)
	}

	if err := seedUsers(ctx, users, cfg.Auth); err != nil {
		log.Fatal().Err(err).Msg("failed to seed users")
	}

	svcLog := logging.Component(log, "service")
	docOpts := []service.Option{}
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		docOpts = append(docOpts,
			service.WithStorage(objStore),
			service.WithDownloader(service.NewPresignDownloader(objStore, cfg.MinIO.PresignExpiry, service.NewLogDownloader(svcLog), svcLog)),
		)
	}

	authSvc := service.NewAuthService(users, service.AuthOptions{
		DemoMode:     cfg.Auth.DemoMode,
		DemoPassword: cfg.Auth.DemoPassword,
		HashCost:     bcrypt.DefaultCost,
	}, cfg.Latency, svcLog)
	docSvc := service.NewDocumentService(docRepo, cfg.Latency, svcLog, docOpts...)

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Str("event", "jwt_secret_generated").Msg("JWT_SECRET not set, tokens will not survive a restart")
	}
	tokens, err := auth.NewIssuer(secret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token issuer")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Leave room for the multipart envelope so oversized files reach form validation.
		BodyLimit:             int(form.MaxFileSize) + 1<<20,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component(log, "http")))
	app.Use(promMiddleware.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:     db,
		Auth:   authSvc,
		Docs:   docSvc,
		Tokens: tokens,
	})

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

	go func() {
		<-ctx.Done()
		log.Info().Str("event", "shutdown").Send()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	log.Info().Str("event", "listening").Str("addr", addr).Bool("database", db != nil).Bool("object_storage", cfg.MinIO.Enabled()).Send()
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// seedUsers creates the demo accounts when missing. Outside demo mode they
// get the demo password hashed so they can still sign in.
func seedUsers(ctx context.Context, users repository.UserRepository, cfg config.AuthConfig) error {
	var hash string
	if !cfg.DemoMode {
		h, err := service.HashPassword(cfg.DemoPassword, bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = h
	}
	for _, u := range memory.SeedUsers() {
		u.PasswordHash = hash
		if _, err := users.Create(ctx, &u); err != nil && !errors.Is(err, repository.ErrDuplicateEmail) {
			return err
		}
	}
	return nil
}
