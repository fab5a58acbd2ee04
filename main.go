package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/stylemart/shopbot-backend/database"
	"github.com/stylemart/shopbot-backend/internal/agents"
	"github.com/stylemart/shopbot-backend/internal/ai"
	"github.com/stylemart/shopbot-backend/internal/handlers"
	"github.com/stylemart/shopbot-backend/internal/jobs"
	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/routes"
	"github.com/stylemart/shopbot-backend/internal/services"
	"github.com/stylemart/shopbot-backend/internal/storage"
	logx "github.com/stylemart/shopbot-backend/pkg/logger"
)

const version = "1.0.0"

// AppConfig is the full environment-driven configuration.
type AppConfig struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	UseMemoryStore bool `envconfig:"USE_MEMORY_STORE" default:"true"`
	SeedData       bool `envconfig:"SEED_DATA" default:"true"`

	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`

	DB      database.Config
	Redis   storage.RedisConfig
	AI      ai.Config
	Payment agents.PaymentConfig
}

func main() {
	_ = godotenv.Load(".env")

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("invalid configuration")
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment})

	store := buildStore(cfg)

	if cfg.SeedData {
		if err := database.Seed(store); err != nil {
			logx.Fatal().Err(err).Msg("seeding failed")
		}
	}

	generator := buildGenerator(cfg)

	contextManager := services.NewContextManager(store)
	salesAgent := agents.NewSalesAgent(generator)
	recommendationAgent := agents.NewRecommendationAgent(store, generator)
	inventoryAgent := agents.NewInventoryAgent(store)
	loyaltyAgent := agents.NewLoyaltyAgent(store)
	paymentAgent := agents.NewPaymentAgent(store, cfg.Payment)
	orchestrator := agents.NewOrchestrator(store, contextManager, salesAgent,
		recommendationAgent, inventoryAgent, loyaltyAgent, paymentAgent)

	analyticsService := services.NewAnalyticsService(store)
	recoveryService := services.NewErrorRecoveryService(store)

	expiryJob := jobs.NewSessionExpiryJob(store, cfg.SessionTTL, cfg.SweepInterval)
	expiryJob.Start()

	app := fiber.New(fiber.Config{
		AppName: "StyleMart Shopbot Backend",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	routes.SetupRoutes(app, routes.Handlers{
		Health:    handlers.NewHealthHandler(version),
		Chat:      handlers.NewChatHandler(orchestrator, salesAgent, store),
		Session:   handlers.NewSessionHandler(contextManager),
		Cart:      handlers.NewCartHandler(contextManager),
		Product:   handlers.NewProductHandler(store, recommendationAgent, inventoryAgent),
		Customer:  handlers.NewCustomerHandler(store, loyaltyAgent, paymentAgent, contextManager),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, recoveryService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logx.Info().Msg("shutting down")
		expiryJob.Stop()
		if err := app.Shutdown(); err != nil {
			logx.Error().Err(err).Msg("shutdown error")
		}
	}()

	logx.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}

// buildStore wires the storage stack: in-memory for demos, PostgreSQL for
// real deployments, with an optional Redis session cache on top.
func buildStore(cfg AppConfig) storage.Store {
	var store storage.Store

	if cfg.UseMemoryStore {
		logx.Info().Msg("using in-memory store")
		store = storage.NewMemoryStore()
	} else {
		db, err := database.Connect(cfg.DB)
		if err != nil {
			logx.Fatal().Err(err).Msg("database connection failed")
		}
		if err := db.AutoMigrate(&models.Product{}, &models.Customer{}, &models.ChatSession{}); err != nil {
			logx.Fatal().Err(err).Msg("migration failed")
		}
		store = storage.NewDatabaseStore(db)
	}

	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Warn().Err(err).Msg("redis unavailable, continuing without session cache")
			return store
		}
		logx.Info().Msg("redis session cache enabled")
		return storage.NewCachedStore(store, rdb, cfg.SessionTTL)
	}
	return store
}

// buildGenerator creates the AI client. Without an API key the server still
// runs: every generation returns an error and agents degrade to their
// fallbacks.
func buildGenerator(cfg AppConfig) ai.Generator {
	client, err := ai.NewClient(context.Background(), cfg.AI)
	if err != nil {
		logx.Warn().Err(err).Msg("AI client unavailable, responses will degrade")
		return ai.Unavailable(err)
	}
	return client
}
