package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voice-booking-webhook/internal/config"
	"voice-booking-webhook/internal/handler"
	"voice-booking-webhook/internal/logger"
	"voice-booking-webhook/internal/middleware"
	"voice-booking-webhook/internal/realtime"
	"voice-booking-webhook/internal/retell"
	"voice-booking-webhook/internal/scheduling"
	"voice-booking-webhook/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	// database, optional: without it every operation reports
	// "Database connection failed"
	var (
		sched *scheduling.Service
		db    handler.Pinger
	)
	bc := broadcaster(ctx, cfg, lg)
	if st := openStore(ctx, cfg, lg); st != nil {
		defer st.Close()
		sched = scheduling.New(st, bc, lg)
		db = st
	} else {
		sched = scheduling.New(nil, bc, lg)
	}

	calls := retell.New(cfg.RetellBaseURL, cfg.RetellAPIKey, cfg.RetellAgentID)
	h := handler.New(sched, calls, db, lg, cfg.ErrorLogPath)

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: h.Router(
			middleware.RequestID(lg),
			middleware.Metrics,
			middleware.RateLimit(rl, lg),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		lg.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("shutdown", zap.Error(err))
	}
}

// openStore connects and migrates. It returns nil when no database is
// configured or the connection fails; the server still starts.
func openStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) *store.Store {
	if cfg.SupabaseWithoutDatabase() {
		lg.Warn("SUPABASE_URL/SUPABASE_KEY only enable realtime broadcast; set DATABASE_URL to the project's Postgres connection string to store appointments")
	}
	if !cfg.DatabaseEnabled() {
		lg.Warn("DATABASE_URL not set, running without a database")
		return nil
	}
	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Warn("database unavailable, running without it", zap.Error(err))
		return nil
	}
	lg.Info("connected to postgres")

	st := store.New(pool)
	if err := st.Migrate(ctx, cfg.MigrationsPath); err != nil {
		lg.Warn("migration skipped", zap.Error(err))
	} else {
		lg.Info("migration applied", zap.String("path", cfg.MigrationsPath))
	}
	return st
}

// broadcaster prefers Redis, then Supabase realtime, then nothing.
func broadcaster(ctx context.Context, cfg *config.Config, lg *zap.Logger) scheduling.Broadcaster {
	switch {
	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			lg.Warn("redis ping failed", zap.Error(err))
		}
		lg.Info("broadcasting via redis", zap.String("channel", cfg.BroadcastChannel))
		return realtime.NewRedis(client, cfg.BroadcastChannel)
	case cfg.SupabaseEnabled():
		lg.Info("broadcasting via supabase realtime", zap.String("channel", cfg.BroadcastChannel))
		return realtime.NewSupabase(cfg.SupabaseURL, cfg.SupabaseKey, cfg.BroadcastChannel, lg)
	}
	lg.Warn("no realtime backend configured, bookings are not broadcast")
	return realtime.Noop{}
}
