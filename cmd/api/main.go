package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"prequal_backend/internal/adapters"
	"prequal_backend/internal/dealers"
	"prequal_backend/internal/email"
	"prequal_backend/internal/events"
	"prequal_backend/internal/extraction"
	apphttp "prequal_backend/internal/http"
	"prequal_backend/internal/http/router"
	"prequal_backend/internal/intake"
	"prequal_backend/internal/intake/ports"
	"prequal_backend/internal/leads"
	"prequal_backend/internal/notification"
	"prequal_backend/internal/routing"
	"prequal_backend/migrations"
	"prequal_backend/platform/config"
	"prequal_backend/platform/db"
	"prequal_backend/platform/logger"
	"prequal_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisOpt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	dealersModule := dealers.NewModule(pool, log)
	leadsModule := leads.NewModule(pool, log)

	routingSvc := routing.NewService(leadsModule.Repository(), dealersModule.Service(), cfg, eventBus, log)

	// A nil extractor disables in-process extraction; the voice platform's
	// own field extraction still flows through turn requests.
	var extractor ports.Extractor
	gemini, err := extraction.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize extractor", "error", err)
		panic("failed to initialize extractor: " + err.Error())
	}
	if gemini != nil {
		extractor = gemini
		log.Info("gemini extraction enabled", "model", cfg.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not configured; in-process extraction disabled")
	}

	intakeModule := intake.NewModule(
		redisClient,
		cfg,
		leadsModule.Service(),
		routingSvc,
		dealersModule.Service(),
		extractor,
		eventBus,
		log,
		val,
	)

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(
		sender,
		adapters.NewDealerContactReader(dealersModule.Service()),
		adapters.NewLeadSummaryReader(leadsModule.Service()),
		log,
	)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			intakeModule,
			leadsModule,
			dealersModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
