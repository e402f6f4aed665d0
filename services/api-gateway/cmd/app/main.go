package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/api-gateway/internal/client"
	"github.com/waste3d/courseplatform-api/services/api-gateway/internal/config"
	"github.com/waste3d/courseplatform-api/services/api-gateway/internal/middleware"
	"github.com/waste3d/courseplatform-api/services/api-gateway/internal/security"
	handlers "github.com/waste3d/courseplatform-api/services/api-gateway/internal/transport/http"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer lg.Sync()

	if cfg.AccessSecret == "" {
		lg.Fatal("ACCESS_SECRET is required")
	}

	// 2. Redis для rate limit. Без него шлюз работает, лимиты отключаются.
	var limiter *middleware.RateLimiter
	rdb := redis.NewClient(&redis.Options{Addr: cfg.REDIS_ADDR})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		lg.Warn("redis unavailable, rate limiting disabled", "addr", cfg.REDIS_ADDR, "error", err)
	} else {
		lg.Info("connected to redis", "addr", cfg.REDIS_ADDR)
		limiter = middleware.NewRateLimiter(rdb)
	}
	defer rdb.Close()

	// 3. gRPC клиент learning-service
	learning, err := client.NewLearningClient(cfg.LearningSvcUrl)
	if err != nil {
		lg.Fatal("failed to create learning client", "url", cfg.LearningSvcUrl, "error", err)
	}
	defer learning.Close()

	// 4. Хендлеры и роутер
	router := handlers.NewRouter(handlers.RouterDeps{
		Courses:           handlers.NewCourseHandler(learning.Client, cfg.RPCTimeout),
		Progress:          handlers.NewProgressHandler(learning.Client, cfg.RPCTimeout),
		Transactions:      handlers.NewTransactionHandler(learning.Client, cfg.RPCTimeout),
		Tokens:            security.NewTokenManager(cfg.AccessSecret),
		Limiter:           limiter,
		PurchaseRateLimit: cfg.PurchaseRateLimit,
		AllowedOrigins:    cfg.Origins(),
		Log:               lg,
	})

	// 5. HTTP сервер
	lg.Info("api gateway running", "port", cfg.Port, "learning_svc", cfg.LearningSvcUrl)
	if err := router.Run(cfg.Port); err != nil {
		lg.Fatal("failed to run server", "error", err)
	}
}
