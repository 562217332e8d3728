package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/amqp"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/backend"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/cache"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/cli"
	apphttp "github.com/meheraj786/fortunate-business-management-sub001/internal/http"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/services"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentApp)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	store, err := backend.NewFactory(logger, time.Local).Create(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ready := map[string]apphttp.ReadyCheck{"store": store.Ping}
	opts := []services.Option{services.WithPageSize(cfg.PageSize)}

	cacheLogger := logger.WithComponent(applog.ComponentCache)
	manager := cache.NewManager()
	var redisCache *cache.RedisExpenseCache
	switch {
	case cfg.RedisAddr != "":
		redisCache = cache.NewRedisExpenseCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		opts = append(opts, services.WithExpenseCache(redisCache))
		ready["redis"] = redisCache.Ping
		cacheLogger.Info("Using redis expense cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
	case cfg.CacheTTL > 0:
		lru := cache.NewLRUExpenseCache(60, cfg.CacheTTL)
		manager.Register(lru)
		manager.StartCleanup(cfg.CacheTTL)
		opts = append(opts, services.WithExpenseCache(lru))
		cacheLogger.Info("Using in-process expense cache", "ttl", cfg.CacheTTL.String())
	default:
		cacheLogger.Info("Expense cache disabled")
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(applog.ComponentAMQP).Warn("Failed to initialize AMQP client, continuing without mirroring", applog.FieldError, err)
		} else {
			opts = append(opts, services.WithPublisher(amqpClient))
			logger.WithComponent(applog.ComponentAMQP).Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	records := services.NewRecordService(store.Store, opts...)

	srv := apphttp.NewServer(":"+cfg.Port, records, apphttp.Options{
		Logger:         logger,
		AvatarBaseURL:  cfg.AvatarBaseURL,
		TrustedProxies: cfg.TrustedProxies,
		Location:       time.Local,
		ReadyChecks:    ready,
	})
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		manager.Stop()
		if amqpClient != nil {
			_ = amqpClient.Close()
		}
		if redisCache != nil {
			_ = redisCache.Close()
		}
		if err := store.Close(); err != nil {
			logger.Error("Backend cleanup error", applog.FieldError, err)
		}
	})

	logger.Info("Starting fortunate server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"amqp_enabled", amqpClient != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
