package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/config"
	"github.com/romasdental/clinic-portal/internal/email"
	"github.com/romasdental/clinic-portal/internal/handler/health"
	promHandler "github.com/romasdental/clinic-portal/internal/handler/prometheus"
	"github.com/romasdental/clinic-portal/internal/repository/postgres"
	"github.com/romasdental/clinic-portal/internal/worker"
	"github.com/romasdental/clinic-portal/pkg/logger"
	"github.com/romasdental/clinic-portal/pkg/messaging/redis"
	"github.com/romasdental/clinic-portal/pkg/metrics"
)

const serviceName = "clinic-portal-worker"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(registry, cfg.Monitoring.Namespace, "worker")

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	checks := map[string]health.Pinger{}
	if p, ok := broker.(health.Pinger); ok {
		checks["broker"] = p
	}

	var mailer email.Service
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPService(cfg.SMTP, cfg.Clinic.Name)
	} else {
		log.Warn().Msg("SMTP not configured, booking events will only be logged")
	}

	var wg sync.WaitGroup

	events := worker.NewBookingEventWorker(broker, cfg.Redis.Channel, mailer, appMetrics)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := events.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Booking event worker failed")
			stop()
		}
	}()

	if mailer != nil && cfg.Worker.DigestInterval > 0 {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		checks["database"] = db

		repos := postgres.NewRepositories(db, appMetrics)
		digest := worker.NewPendingDigestWorker(repos.Bookings, mailer, cfg.SMTP.To, cfg.Worker.DigestInterval)
		wg.Add(1)
		go func() {
			defer wg.Done()
			digest.Start(ctx)
		}()
	}

	srv := healthServer(cfg, registry, checks)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Health server failed")
		}
	}()

	log.Info().Str("channel", cfg.Redis.Channel).Msg("Worker started")
	<-ctx.Done()
	log.Info().Msg("Shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Health server forced to shutdown")
	}

	wg.Wait()
	log.Info().Msg("Worker exited")
}

func healthServer(cfg *config.Config, registry *prometheus.Registry, checks map[string]health.Pinger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	health.NewHandler(checks).RegisterRoutes(engine)
	if cfg.Monitoring.MetricsPath != "" {
		engine.GET(cfg.Monitoring.MetricsPath, promHandler.New(registry).Handler())
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.WorkerPort),
		Handler: engine,
	}
}
