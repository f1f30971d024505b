// @title                       PartsQuote Gateway API
// @version                     1.0
// @description                 Route-authorization gateway and credential issuer for the PartsQuote frontend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/partsquote/gateway/internal/api"
	"github.com/partsquote/gateway/internal/api/handler"
	"github.com/partsquote/gateway/internal/core/service"
	"github.com/partsquote/gateway/internal/infrastructure/config"
	mongodb "github.com/partsquote/gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/partsquote/gateway/internal/infrastructure/db/redis"
	"github.com/partsquote/gateway/internal/infrastructure/queue"
	"github.com/partsquote/gateway/internal/infrastructure/token"
	"github.com/partsquote/gateway/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		// Init is a no-op returning the configured logger once run has set it up.
		log := logger.Init(logger.Options{Service: "partsquote-gateway"})
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}

func run() error {
	// A missing .env is normal outside local development.
	envErr := godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "partsquote-gateway",
	})
	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env not loaded")
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err != nil {
		return err
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "partsquote-gateway",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	users := mongodb.NewUserRepository(db)
	accessEvents := mongodb.NewAccessEventRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := accessEvents.EnsureIndexes(ctx); err != nil {
		return err
	}
	revocations := redisdb.NewRevocationStore(rdb)

	// --- Core ---
	codec, err := token.NewCodec(cfg.Auth.JWTSecret, token.WithRevocationStore(revocations))
	if err != nil {
		return err
	}

	classifier, err := service.NewPathClassifier(service.DefaultRouteTable())
	if err != nil {
		return err
	}

	accessLog := service.NewAccessLogService(accessEvents)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, accessLog, logger.Component("access_events"))
	// Workers outlive the signal context; Close drains them after the
	// server has stopped.
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	authService := service.NewAuthService(users, codec, cfg.Auth.TokenTTL,
		service.WithRevocations(revocations),
		service.WithAccessEvents(dispatcher),
	)

	// --- HTTP ---
	e, err := api.NewRouter(api.RouterConfig{
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure,
		LoginPath:    cfg.Auth.LoginPath,
		TokenTTL:     cfg.Auth.TokenTTL,
		UpstreamURL:  cfg.UpstreamURL,
	}, api.Deps{
		Gate:      service.NewGateService(classifier, codec),
		Verifier:  codec,
		Auth:      authService,
		Sessions:  service.NewSessionService(codec),
		AccessLog: accessLog,
		Events:    dispatcher,
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		Log: logger.Component("http"),
	})
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.UpstreamURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	log.Info().Msg("gateway stopped")
	return nil
}
