package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	historyhandler "movehistory/internal/history/handler"
	"movehistory/internal/history/metrics"
	historyservice "movehistory/internal/history/service"
	"movehistory/internal/history/store"
	"movehistory/internal/ingest"
	"movehistory/internal/jwttoken"
	"movehistory/internal/platform/config"
	"movehistory/internal/platform/httpserver"
	"movehistory/internal/platform/logger"
	"movehistory/internal/platform/middleware"
	platformredis "movehistory/internal/platform/redis"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Classification and rendering logic lives in internal/historyevents; this
// binary only feeds it stored audit rows and serves the result.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}

	cache, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	historyStore := store.NewPostgres(db)
	svc := historyservice.New(historyStore, log,
		historyservice.WithCache(cache),
		historyservice.WithMetrics(metrics.New()),
		historyservice.WithCacheTTL(cfg.CacheTTL),
	)
	handler := historyhandler.New(svc, log)
	validator := jwttoken.NewValidator(cfg.JWTSigningKey, cfg.JWTIssuer)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		handler.Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting movehistory server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Kafka.Enabled() {
		consumer, err := ingest.NewConsumer(cfg.Kafka, historyStore, log)
		if err != nil {
			log.Error("create ingest consumer", "error", err)
			os.Exit(1)
		}
		g.Go(func() error {
			defer consumer.Close()
			return consumer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
