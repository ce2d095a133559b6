package main

import (
	"context"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castello-soft/stock-ledger/internal/auth"
	"github.com/castello-soft/stock-ledger/internal/config"
	"github.com/castello-soft/stock-ledger/internal/db"
	router "github.com/castello-soft/stock-ledger/internal/http"
	"github.com/castello-soft/stock-ledger/internal/http/handlers"
	rl "github.com/castello-soft/stock-ledger/internal/http/rate_limiter"
	"github.com/castello-soft/stock-ledger/internal/ledger"
	"github.com/castello-soft/stock-ledger/internal/repo"
)

var ctx = context.Background()

// @title Stock Ledger API
// @version 1.0
// @description REST API for inventory items and the append-only stock movement ledger.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	auth.Configure(cfg.JWTSecret, cfg.TokenTTL)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("could not connect to redis")
	}
	defer rdb.Close()
	auth.SetRedisClient(rdb, ctx)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close()
	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("could not apply schema")
	}

	items := repo.NewPostgresItemRepository(database)
	movements := repo.NewPostgresMovementRepository(database)
	handlers.SetLedgerService(ledger.NewService(items, movements, repo.NewPostgresTxRunner(database)))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))

	go rl.StartVisitorCleanupLoop()

	r := router.NewRouter()
	log.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
