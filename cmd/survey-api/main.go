package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/survey-admin-api/api/swagger"
	"github.com/noah-isme/survey-admin-api/internal/handler"
	"github.com/noah-isme/survey-admin-api/internal/middleware"
	"github.com/noah-isme/survey-admin-api/internal/repository"
	"github.com/noah-isme/survey-admin-api/internal/service"
	"github.com/noah-isme/survey-admin-api/pkg/cache"
	"github.com/noah-isme/survey-admin-api/pkg/config"
	"github.com/noah-isme/survey-admin-api/pkg/database"
	"github.com/noah-isme/survey-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/survey-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/survey-admin-api/pkg/middleware/requestid"
)

// @title School Survey Admin API
// @version 1.0.0
// @description Administration API for schools, courses, enrollments and surveys.
// @BasePath /api/mongodb
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logr.Fatal("store unavailable", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	logr.Info("store connected", zap.String("backend", store.Backend()))

	metrics := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client)
		}
	}
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
	}

	db := service.NewDatabaseService(store, cacheSvc, metrics, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterOps(r, handler.NewMetricsHandler(metrics, db, logr))
	handler.RegisterRoutes(r.Group(cfg.APIPrefix), db, logr)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("http shutdown", zap.Error(err))
	}
	if cacheRepo != nil {
		if err := cacheRepo.Close(); err != nil {
			logr.Warn("redis close", zap.Error(err))
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logr.Warn("store close", zap.Error(err))
	}
}

// openStore connects the configured backend and prepares its indexes or tables.
func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	bootCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, mdb, err := database.NewMongo(bootCtx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureMongoIndexes(bootCtx, mdb); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return repository.NewMongoStore(client, mdb, cfg.Database.Timeout), nil
	case config.DriverPostgres:
		pg, err := database.NewPostgres(bootCtx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsurePostgresSchema(bootCtx, pg); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return repository.NewPostgresStore(pg, cfg.Database.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}
