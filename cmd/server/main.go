package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"bookreviews/internal/app"
	"bookreviews/internal/config"
	"bookreviews/internal/events"
	"bookreviews/internal/ratelimit"
	"bookreviews/internal/server"
	"bookreviews/internal/util"
	"bookreviews/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session ttl: %v", err)
	}

	var dataStore store.Store
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn("using in-memory storage; data is lost on restart")
		dataStore = store.NewMemoryStore()
	default:
		gormStore, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		dataStore = gormStore
	}

	var sessions store.SessionStore
	switch cfg.SessionStrategy {
	case config.SessionRedis:
		sessions = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, sessionTTL)
	default:
		jwtSessions, err := store.NewJWTSessionStore(cfg.JWTSecret, sessionTTL)
		if err != nil {
			log.Fatalf("failed to init jwt session store: %v", err)
		}
		sessions = jwtSessions
	}

	var signupLimiter, loginLimiter *ratelimit.FixedWindowLimiter
	if cfg.SignupRateLimitPerMinute > 0 {
		signupLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "bookreviews:ratelimit:signup",
			cfg.SignupRateLimitPerMinute, time.Minute,
		)
		if err != nil {
			log.Fatalf("failed to init signup limiter: %v", err)
		}
	}
	if cfg.LoginRateLimitPerMinute > 0 {
		loginLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "bookreviews:ratelimit:login",
			cfg.LoginRateLimitPerMinute, time.Minute,
		)
		if err != nil {
			log.Fatalf("failed to init login limiter: %v", err)
		}
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("failed to init event publisher: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	appCore, err := app.New(app.Config{
		Store:     dataStore,
		Sessions:  sessions,
		Publisher: publisher,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:           appCore,
		SignupLimiter: signupLimiter,
		LoginLimiter:  loginLimiter,
		TrustProxy:    cfg.TrustProxy,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("book review server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
