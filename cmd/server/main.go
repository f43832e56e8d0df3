// Package main is the entry point of the welfare API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"welfare/internal/config"
	"welfare/internal/handlers"
	"welfare/internal/ledger"
	"welfare/internal/logging"
	"welfare/internal/repositories"
	"welfare/internal/repositories/cache"
	"welfare/internal/routes"
	"welfare/internal/services/snapshot"
	"welfare/internal/services/welfare"
	"welfare/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	accessLog := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON})

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = utils.MustGenerateSecureCode()
		log.Warn("JWT_SECRET is empty, using an ephemeral secret; issued tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repositories.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cacheService := cache.NewCacheService(redisClient, 24*time.Hour)
	log.WithField("addr", cfg.RedisAddr()).Info("redis client configured")
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis connection")
		}
		if err := repositories.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database connection")
		}
	}()

	store := ledger.New(ledger.Options{VoucherTTL: cfg.VoucherTTL})
	worker := snapshot.NewWorker(store, cache.NewSnapshotStore(cacheService), cfg.SnapshotInterval)
	source, err := worker.Restore(ctx, func(ctx context.Context) (ledger.Catalog, error) {
		return repositories.LoadCatalog(ctx, db)
	})
	if err != nil {
		log.Fatalf("Failed to hydrate ledger: %v", err)
	}
	log.WithField("source", source).Info("ledger ready")
	worker.Start(ctx)
	go logPoolStats(ctx, db, cacheService, 5*time.Minute)

	welfareService := welfare.NewService(store, repositories.NewRecorder(db), worker, nil)

	app := fiber.New(fiber.Config{
		AppName:      "welfare-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	app.Use("/api/partners", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Welfare:   welfareService,
		JWTSecret: cfg.JWTSecret,
		HealthChecks: map[string]handlers.Check{
			"database": pingDB(db),
			"redis":    cacheService.HealthCheck,
		},
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Warn("HTTP shutdown incomplete")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := worker.Flush(flushCtx); err != nil {
		log.WithError(err).Warn("Final snapshot failed")
	}
}

func pingDB(db *gorm.DB) handlers.Check {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func logPoolStats(ctx context.Context, db *gorm.DB, cacheService *cache.CacheService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fields := log.Fields{}
			if sqlDB, err := db.DB(); err == nil {
				st := sqlDB.Stats()
				fields["db_open"] = st.OpenConnections
				fields["db_in_use"] = st.InUse
				fields["db_idle"] = st.Idle
			}
			rs := cacheService.GetStats()
			fields["redis_total"] = rs.TotalConns
			fields["redis_idle"] = rs.IdleConns
			fields["redis_hits"] = rs.Hits
			log.WithFields(fields).Debug("connection pool stats")
		}
	}
}
