package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/ledger-search/internal/auth"
	"github.com/rogerio-castellano/ledger-search/internal/cache"
	"github.com/rogerio-castellano/ledger-search/internal/config"
	"github.com/rogerio-castellano/ledger-search/internal/db"
	router "github.com/rogerio-castellano/ledger-search/internal/http"
	"github.com/rogerio-castellano/ledger-search/internal/http/handlers"
	rl "github.com/rogerio-castellano/ledger-search/internal/http/rate_limiter"
	"github.com/rogerio-castellano/ledger-search/internal/jobs/inmemory"
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
	"github.com/rogerio-castellano/ledger-search/internal/search"
	"github.com/rogerio-castellano/ledger-search/internal/seed"
	"github.com/rogerio-castellano/ledger-search/internal/tier"
)

// @title Transaction Ledger Search API
// @version 1.0
// @description Tiered search over an append-mostly transaction ledger with sync and async execution paths.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	go rl.StartClientCleanupLoop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		log.Fatal("❌ Could not apply schema:", err)
	}
	if err := seed.Load(database); err != nil {
		log.Fatal("❌ Could not seed reference data:", err)
	}
	if cfg.SeedDemoData {
		if err := seed.LoadDemoData(database); err != nil {
			log.Fatal("❌ Could not seed demo data:", err)
		}
	}

	transactionRepo := repo.NewPostgresTransactionRepository(database)
	jobRepo := repo.NewPostgresJobRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)

	queue := inmemory.NewQueue(cfg.QueueBufferSize)
	defer queue.Close()

	policy := tier.Policy{
		MaxRangeDays: map[string]int{
			models.TierRegular: cfg.RegularMaxRangeDays,
			models.TierPremium: cfg.PremiumMaxRangeDays,
			models.TierAdmin:   0,
		},
		DefaultMaxDays: cfg.DefaultMaxRangeDays,
	}
	limits := search.Limits{
		AsyncThreshold: time.Duration(cfg.AsyncThresholdDays) * 24 * time.Hour,
		FulltextWindow: time.Duration(cfg.FulltextWindowDays) * 24 * time.Hour,
		HardResultCap:  cfg.HardResultCap,
		CacheTTL:       cfg.CacheTTL,
	}

	svc := search.NewService(
		transactionRepo,
		jobRepo,
		tier.NewResolver(userRepo),
		cache.NewRedisCache(rdb),
		queue,
		policy,
		limits,
	)
	handlers.SetSearchService(svc)

	worker := search.NewWorker(jobRepo, svc)
	if err := queue.Start(ctx, worker.Consume); err != nil {
		log.Fatal("❌ Could not start job worker:", err)
	}

	r := router.NewRouter()
	log.Println("✅ Server running on", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}
