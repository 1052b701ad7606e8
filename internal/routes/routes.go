package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dermalyze/dermalyze/internal/analysis"
	"github.com/dermalyze/dermalyze/internal/auth"
	"github.com/dermalyze/dermalyze/internal/catalog"
	"github.com/dermalyze/dermalyze/internal/config"
	"github.com/dermalyze/dermalyze/internal/identity"
	"github.com/dermalyze/dermalyze/internal/metrics"
	"github.com/dermalyze/dermalyze/internal/middleware"
	"github.com/dermalyze/dermalyze/internal/points"
	"github.com/dermalyze/dermalyze/internal/scoring"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a
// database or Redis it falls back to in-memory stores, which is only
// allowed in development.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.Dev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	collector := metrics.NewCollector()

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(collector.Middleware())
	if d.Cache != nil {
		// Login and register issue credentials; their responses must never
		// be replayable from a shared cache.
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger,
			"/api/login", "/api/register"))
	}

	RegisterHealthRoutes(app, d)
	app.Get("/metrics", collector.Handler())

	// Stores
	var users identity.Repository
	var records analysis.Repository
	var products catalog.Repository
	if d.DB != nil {
		users = identity.NewPostgresRepository(d.DB)
		records = analysis.NewPostgresRepository(d.DB)
		products = catalog.NewPostgresRepository(d.DB)
	} else {
		users = identity.NewMemoryRepository()
		records = analysis.NewMemoryRepository()
		products = catalog.NewMemoryRepository()
	}

	var registry auth.RevocationRegistry
	if d.Cache != nil {
		registry = auth.NewRedisRegistry(d.Cache, d.Cfg.TokenTTL)
	} else {
		registry = auth.NewMemoryRegistry()
	}

	// External scoring connector; the static stub serves scoring-less setups.
	var scorer scoring.Scorer
	if d.Cfg.ScoringURL != "" {
		scorer = scoring.NewHTTPScorer(d.Cfg.ScoringURL, d.Cfg.ScoringTimeout)
	} else {
		scorer = scoring.Static{Label: "Normal", Confidence: 87.3}
	}

	// Services and handlers
	identitySvc := identity.NewService(users)
	authSvc := auth.NewService(d.Cfg, registry)
	authHandler := auth.NewHandler(identitySvc, authSvc)
	analysisSvc := analysis.NewService(records, scorer, d.Cfg.UploadDir, d.Logger, collector)
	analysisHandler := analysis.NewHandler(analysisSvc)
	catalogHandler := catalog.NewHandler(products)
	pointsHandler := points.NewHandler(points.NewService(users))

	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	guard := middleware.Auth(authSvc, users, d.Logger)
	protected := api.Group("", guard)
	protected.Post("/logout", authHandler.Logout)
	RegisterAnalysisRoutes(protected, analysisHandler)
	RegisterCatalogRoutes(protected, catalogHandler)
	RegisterPointsRoutes(protected, pointsHandler)

	return nil
}
