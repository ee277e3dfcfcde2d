// Package app assembles the file processing server's components into one
// running Application: the operations library, the dedup cache, the
// adaptive worker pool, the metrics registry, the workflow executor, and
// the gin HTTP adapter in front of them.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/docflex/gRPC-File-Processor/internal/api"
	"github.com/docflex/gRPC-File-Processor/internal/dedupcache"
	"github.com/docflex/gRPC-File-Processor/internal/fileops"
	"github.com/docflex/gRPC-File-Processor/internal/metrics"
	"github.com/docflex/gRPC-File-Processor/internal/middleware"
	"github.com/docflex/gRPC-File-Processor/internal/tracing"
	"github.com/docflex/gRPC-File-Processor/internal/workerpool"
	"github.com/docflex/gRPC-File-Processor/internal/workflow"
	"github.com/docflex/gRPC-File-Processor/pkg/config"
)

// Application holds every long-lived component the server needs and the
// gin engine routes are registered onto.
type Application struct {
	Config  *config.Config
	Engine  *gin.Engine
	Service api.Service
	Pool    *workerpool.Pool
	Dedup   *dedupcache.Cache
	Metrics *metrics.Registry
	Logger  *slog.Logger

	PromRegistry *prometheus.Registry

	TracingShutdown func(context.Context) error
}

// NewApplication wires the full dependency graph from cfg. The dedup
// cache's Redis client is optional: an empty RedisAddr runs the cache in
// Bloom-filter-only mode, matching dedupcache.New's documented nil-client
// degradation.
func NewApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	logger := newLogger(cfg)

	tracingShutdown, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.TracingEnabled,
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		SampleRatio:  cfg.SampleRatio,
	}, logger)
	if err != nil {
		return nil, err
	}

	redisClient := dedupRedisClient(cfg)
	dedup := dedupcache.New(redisClient, dedupcache.Options{
		Capacity:          cfg.DedupCapacity,
		FalsePositiveRate: cfg.DedupFalsePositive,
		RotateEvery:       cfg.DedupRotateEvery(),
		TTL:               cfg.DedupTTL(),
		Logger:            logger,
	})

	ops := fileops.NewLibrary(cfg.StorageDir, cfg.MaxFileSize, dedup)

	pool := workerpool.New(workerpool.Config{
		CoreWorkers:     cfg.CoreWorkers,
		MaxWorkers:      cfg.MaxWorkers,
		QueueCapacity:   cfg.QueueCapacity,
		ResizeThreshold: cfg.ResizeThreshold,
		IdleTimeout:     cfg.IdleTimeout(),
		MonitorInterval: cfg.MonitorInterval(),
		Logger:          logger,
	})

	reg := metrics.New()
	promReg := prometheus.NewRegistry()
	reg.RegisterCollectors(promReg)

	exec := workflow.NewExecutor(pool, ops, reg, logger)
	svc := api.NewService(exec)

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.LoggerMiddleware(logger), middleware.TracingMiddleware(cfg.ServiceName))

	application := &Application{
		Config:          cfg,
		Engine:          engine,
		Service:         svc,
		Pool:            pool,
		Dedup:           dedup,
		Metrics:         reg,
		Logger:          logger,
		PromRegistry:    promReg,
		TracingShutdown: tracingShutdown,
	}
	return application, nil
}

// Shutdown releases the worker pool, letting in-flight work drain, and
// stops the dedup cache's background rotation goroutine.
func (a *Application) Shutdown() {
	a.Pool.Shutdown()
	a.Dedup.Close()
}

func dedupRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return dedupcache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := new(slog.LevelVar)
	switch cfg.LogLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler).With("service", cfg.ServiceName, "env", cfg.Env)
	slog.SetDefault(logger)
	return logger
}
