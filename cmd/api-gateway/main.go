package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/coaching-conflict-api/api/swagger"
	"github.com/noah-isme/coaching-conflict-api/internal/handler"
	"github.com/noah-isme/coaching-conflict-api/internal/middleware"
	"github.com/noah-isme/coaching-conflict-api/internal/repository"
	"github.com/noah-isme/coaching-conflict-api/internal/service"
	"github.com/noah-isme/coaching-conflict-api/pkg/cache"
	"github.com/noah-isme/coaching-conflict-api/pkg/config"
	"github.com/noah-isme/coaching-conflict-api/pkg/database"
	"github.com/noah-isme/coaching-conflict-api/pkg/export"
	"github.com/noah-isme/coaching-conflict-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/coaching-conflict-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/coaching-conflict-api/pkg/middleware/requestid"
)

// @title Coaching Conflict API
// @version 1.0.0
// @description Schedule conflict checks for coaching batches, carts and enrollments.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	db, err := database.NewPostgres(ctx, cfg.Database)
	cancel()
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	redisClient := connectRedis(cfg, logr)
	if redisClient != nil {
		defer redisClient.Close()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cartRepo := repository.NewCartRepository(db)
	passRepo := repository.NewPassRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Batches.CacheTTL, logr, cfg.Batches.CacheEnabled && redisClient != nil)
	conflictSvc := service.NewConflictService(cartRepo, passRepo, batchRepo, cacheSvc, metricsSvc, validate, logr)
	if cacheSvc.Enabled() && cfg.Batches.WarmWorkers > 0 {
		warmer := service.NewBatchCacheWarmer(conflictSvc, cfg.Batches.WarmWorkers, logr)
		warmer.Start(context.Background())
		defer warmer.Stop()
		conflictSvc.UseCacheWarmer(warmer)
	}
	cartSvc := service.NewCartService(cartRepo, passRepo, conflictSvc, cfg.Cart.MaxItems, metricsSvc, validate, logr)
	reportSvc := service.NewReportService(conflictSvc, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Exports.Enabled, logr)

	conflictHandler := handler.NewConflictHandler(conflictSvc, reportSvc)
	cartHandler := handler.NewCartHandler(cartSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readinessChecks(db, redisClient))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	students := api.Group("/students/:studentId")
	students.GET("/batches/:batchId/conflicts", conflictHandler.CheckBatch)
	students.GET("/cart", cartHandler.List)
	students.POST("/cart", cartHandler.Add)
	students.GET("/cart/validation", conflictHandler.ValidateCart)
	students.GET("/cart/validation/export", conflictHandler.ExportCartValidation)
	students.GET("/cart/:itemId", cartHandler.Get)
	students.DELETE("/cart/:itemId", cartHandler.Remove)

	api.POST("/conflicts/evaluate", conflictHandler.Evaluate)
	api.POST("/conflicts/cart", conflictHandler.ValidateSnapshot)
	api.DELETE("/batches/:batchId/cache", conflictHandler.InvalidateBatch)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "batch_cache", cacheSvc.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func connectRedis(cfg *config.Config, logr *zap.Logger) *redis.Client {
	if !cfg.Batches.CacheEnabled {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("batch cache disabled, redis unavailable", zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
		return nil
	}
	return client
}

func readinessChecks(db *sqlx.DB, redisClient *redis.Client) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}
