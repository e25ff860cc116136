package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kimurazver67/sport-transformation-app-sub000/config"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/api"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/database"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/logging"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/middleware"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/router"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/server"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.NewLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return err
	}

	// Redis backs rate limiting and generation snapshots; both degrade without it.
	var redisClient *redis.Client
	if rc, err := database.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, rate limiting and snapshots disabled", slog.Any("error", err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	reporter, flush := newReporter(cfg, logger)
	defer flush()

	var generator service.Generator
	if cfg.GeneratorURL != "" {
		generator = service.NewHTTPGenerator(cfg.GeneratorURL, cfg.GeneratorAPIKey, cfg.GeneratorTimeout)
	} else {
		logger.Warn("GENERATOR_URL not set, meal plan generation disabled")
	}

	var snapshots service.SnapshotStore
	if redisClient != nil {
		snapshots = service.NewRedisSnapshotStore(redisClient)
	}

	var store service.ObjectStore
	if s3cfg, err := config.NewS3Config(ctx, cfg); err == nil {
		store = s3cfg
	} else {
		logger.Warn("plan export disabled", slog.Any("error", err))
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(db)
	exclusionService := service.NewExclusionService(db)
	inventoryService := service.NewInventoryService(db)
	catalogService := service.NewCatalogService(db)
	planService := service.NewMealPlanService(db, userService, exclusionService, inventoryService, generator, snapshots, reporter)
	exportService := service.NewExportService(planService, store)

	limiter := middleware.NewGenerateRateLimiter(redisClient, cfg.GenerateRateLimit, cfg.GenerateRateWindow)

	engine := router.SetupRouter(router.Handlers{
		Health:    api.NewHealthHandler(db, redisClient),
		Users:     api.NewUserHandler(userService),
		Nutrition: api.NewNutritionHandler(userService, exclusionService, catalogService),
		Inventory: api.NewInventoryHandler(inventoryService),
		MealPlans: api.NewMealPlanHandler(planService, exportService, limiter),
	}, authService, router.Options{
		Logger:          logger,
		Reporter:        reporter,
		AllowedOrigins:  cfg.AllowedOrigins(),
		GenerateLimiter: limiter,
	})

	return server.New(cfg, engine).Run(ctx)
}

// newReporter always logs events and also posts them to Telegram when a bot
// and chat are configured. flush waits for pending Telegram sends.
func newReporter(cfg *config.Config, logger *slog.Logger) (telemetry.Reporter, func()) {
	reporters := telemetry.MultiReporter{telemetry.NewSlogReporter(logger)}
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return reporters, func() {}
	}
	tg := telemetry.NewTelegramReporter(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	return append(reporters, tg), tg.Close
}
