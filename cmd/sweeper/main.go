package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alfredjulianstanly/spot-feed/internal/config"
	"github.com/alfredjulianstanly/spot-feed/internal/events"
	"github.com/alfredjulianstanly/spot-feed/internal/httpx"
	"github.com/alfredjulianstanly/spot-feed/internal/observability/logging"
	"github.com/alfredjulianstanly/spot-feed/internal/observability/metrics"
	impl "github.com/alfredjulianstanly/spot-feed/internal/service/impl"
	"github.com/alfredjulianstanly/spot-feed/internal/store"
	"github.com/alfredjulianstanly/spot-feed/migrations"
	"github.com/alfredjulianstanly/spot-feed/pkg/db"
)

// The sweeper is the background reaper the schema implies: joints keep
// their rows after expiry, something has to flip is_active. Running one
// per replica is fine; the sweep is idempotent.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "sweeper",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	logger.Info("starting service")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrations.Apply(ctx, gdb); err != nil {
		logger.Error("apply migrations", "error", err)
		os.Exit(1)
	}

	metrics.MustRegister("sweeper")

	st := store.New(gdb)
	joints := impl.NewJointServiceImpl(st, events.LogPublisher{Logger: logger}, cfg.DefaultJointTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpx.LogRequests(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()
	logger.Info("sweeper listening", "addr", cfg.Addr, "interval", cfg.SweepInterval)

	sweep := func(now time.Time) {
		count, err := joints.ExpireSweep(ctx, now.UTC())
		if err != nil {
			logger.Error("expire sweep", "error", err)
			return
		}
		if count > 0 {
			logger.Info("joints expired", "count", count)
		}
	}

	sweep(time.Now())

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = srv.Shutdown(shutCtx)
			cancel()
			logger.Info("shutdown complete")
			return
		case now := <-ticker.C:
			sweep(now)
		}
	}
}
