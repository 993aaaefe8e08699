// @title        User Management API
// @version      1.0
// @description  Authentication microservice: signup, login, and profile retrieval with bearer tokens.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanit/user-management/internal/api"
	"github.com/tanit/user-management/internal/api/handler"
	"github.com/tanit/user-management/internal/infrastructure/config"
	neo4jdb "github.com/tanit/user-management/internal/infrastructure/db/neo4j"
	redisdb "github.com/tanit/user-management/internal/infrastructure/db/redis"
	"github.com/tanit/user-management/internal/infrastructure/queue"
	"github.com/tanit/user-management/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Graph store ---
	driver, err := neo4jdb.Connect(ctx, neo4jdb.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("neo4j connection failed")
	}
	defer driver.Close(context.Background())

	users := neo4jdb.NewUserRepository(driver, cfg.Neo4j.Database)
	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("neo4j schema setup failed")
	}

	// --- Session store ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	sessions := queue.NewDispatcher(0, redisdb.NewSessionRecorder(rdb, cfg.TokenTTL), log)
	sessions.Start(ctx)

	// --- HTTP ---
	probes := []handler.Probe{
		{Name: "neo4j", Check: driver.VerifyConnectivity},
		{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}

	e := api.NewRouter(api.Config{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		CORSOrigins: cfg.CORSOrigins,
	}, users, sessions, probes, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("user management API listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
