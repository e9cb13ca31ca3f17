package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/avelez-dev/stock-locator/docs"
	"github.com/avelez-dev/stock-locator/internal/config"
	"github.com/avelez-dev/stock-locator/internal/db"
	api "github.com/avelez-dev/stock-locator/internal/http"
	"github.com/avelez-dev/stock-locator/internal/http/ban"
	"github.com/avelez-dev/stock-locator/internal/http/handlers"
	rl "github.com/avelez-dev/stock-locator/internal/http/rate_limiter"
	"github.com/avelez-dev/stock-locator/internal/redissvc"
	"github.com/avelez-dev/stock-locator/internal/repo"
)

// @title Stock Locator API
// @version 1.0
// @description REST API for locating warehouse products by barcode and checking out stock.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	rl.Configure(cfg.RateLimitRPS, cfg.RateBurst)
	ban.Configure(cfg.StrikeLimit, cfg.StrikeWindow, cfg.BanDuration)
	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The cache and strike tracking are optional; the store is not.
		log.Printf("⚠️ Redis unavailable, running without cache: %v", err)
	} else {
		defer rdb.Close()
		redisService := redissvc.NewRedisService(rdb, ctx, cfg.CacheTTL)
		handlers.SetRedisService(redisService)
		ban.SetRedisService(redisService)
		go ban.StartDailyBanSummary(24 * time.Hour)
		log.Println("✅ Connected to Redis")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetDB(database)

	handler := api.RateLimitMiddleware(api.NewRouter())
	log.Printf("✅ Server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal(err)
	}
}
