package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/attendance"
	"schoolattend/internal/auth"
	"schoolattend/internal/class"
	"schoolattend/internal/config"
	"schoolattend/internal/httpapi"
	"schoolattend/internal/httpmiddleware"
	"schoolattend/internal/logging"
	"schoolattend/internal/observability"
	"schoolattend/internal/session"
	"schoolattend/internal/stats"
	"schoolattend/internal/store"
	"schoolattend/internal/user"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer lg.Closer()

	if err := run(cfg, lg); err != nil {
		lg.Sugar.Fatalw("server failed", "err", err)
	}
}

func run(cfg config.App, lg *logging.Log) error {
	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db.Client); err != nil {
		return err
	}

	var redisClient *store.Redis
	if cfg.RedisAddr != "" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		defer func() { _ = redisClient.Close() }()
	}

	userRepo := user.NewPGRepository(db.Client)
	classRepo := class.NewPGRepository(db.Client)
	attendanceRepo := attendance.NewPGRepository(db.Client)
	sessionRepo := session.NewPGRepository(db.Client)

	users := user.NewService(userRepo)
	classes := class.NewService(classRepo, userRepo)
	ledger := attendance.NewService(attendanceRepo)
	sessions := session.NewService(sessionRepo, cfg.SessionTTL)
	aggregator := stats.NewService(userRepo, classRepo, attendanceRepo)

	var limiter httpmiddleware.Limiter
	if redisClient != nil {
		limiter = httpmiddleware.NewRedisFixedWindow(redisClient.Client, cfg.RateLimitPerMin)
	} else {
		limiter = httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}

	api := httpapi.New(httpapi.Options{
		Log:           lg.Sugar,
		Users:         users,
		Classes:       classes,
		Ledger:        ledger,
		Sessions:      sessions,
		Stats:         aggregator,
		Provider:      auth.NewProviderClient(cfg.AuthProviderURL),
		DB:            db.Client,
		Redis:         redisClient,
		SecureCookies: gin.Mode() == gin.ReleaseMode,
	})
	router := api.Router(
		httpmiddleware.CORS(cfg.CORSOrigins),
		httpmiddleware.SecurityHeaders(),
		httpmiddleware.RateLimit(limiter),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		lg.Sugar.Infow("starting server", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Sugar.Fatalw("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Sugar.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Sugar.Warnw("forced shutdown", "err", err)
	}
	lg.Sugar.Info("server exited")
	return nil
}
