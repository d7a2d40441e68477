package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/romasdental/clinic-portal/internal/config"
	authHandler "github.com/romasdental/clinic-portal/internal/handler/auth"
	bookingHandler "github.com/romasdental/clinic-portal/internal/handler/booking"
	catalogHandler "github.com/romasdental/clinic-portal/internal/handler/catalog"
	contentHandler "github.com/romasdental/clinic-portal/internal/handler/content"
	dashboardHandler "github.com/romasdental/clinic-portal/internal/handler/dashboard"
	"github.com/romasdental/clinic-portal/internal/handler/health"
	promHandler "github.com/romasdental/clinic-portal/internal/handler/prometheus"
	"github.com/romasdental/clinic-portal/internal/middleware"
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository/postgres"
	"github.com/romasdental/clinic-portal/internal/router"
	authService "github.com/romasdental/clinic-portal/internal/service/auth"
	bookingService "github.com/romasdental/clinic-portal/internal/service/booking"
	catalogService "github.com/romasdental/clinic-portal/internal/service/catalog"
	contentService "github.com/romasdental/clinic-portal/internal/service/content"
	dashboardService "github.com/romasdental/clinic-portal/internal/service/dashboard"
	"github.com/romasdental/clinic-portal/internal/storage"
	"github.com/romasdental/clinic-portal/pkg/logger"
	"github.com/romasdental/clinic-portal/pkg/messaging"
	"github.com/romasdental/clinic-portal/pkg/messaging/redis"
	"github.com/romasdental/clinic-portal/pkg/metrics"
	"github.com/romasdental/clinic-portal/pkg/tracing"
	"github.com/romasdental/clinic-portal/pkg/validator"
)

const (
	serviceName = "clinic-portal-api"
	titlesTTL   = 5 * time.Minute
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, serviceName, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}

	registry := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(registry, cfg.Monitoring.Namespace, "api")
	httpMetrics := promHandler.New(registry)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	repos := postgres.NewRepositories(db, appMetrics)

	var blobs storage.BlobStore
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Store(ctx, cfg.Storage, appMetrics)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up object storage")
		}
		blobs = s3
	} else {
		log.Warn().Msg("No storage bucket configured, image uploads are disabled")
	}

	checks := map[string]health.Pinger{"database": db}
	var broker messaging.Broker
	if b, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Logger); err != nil {
		log.Warn().Err(err).Msg("Broker unavailable, booking events will not be published")
	} else {
		broker = b
		defer broker.Close()
		if p, ok := b.(health.Pinger); ok {
			checks["broker"] = p
		}
	}

	v := validator.New()

	catalog := catalogService.NewService(repos, blobs, v, titlesTTL)
	content := contentService.NewService(repos.Content, blobs, v)

	bookingCfg, err := bookingService.NewConfig(cfg.Clinic, cfg.Redis.Channel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid clinic configuration")
	}
	bookings := bookingService.NewService(repos.Bookings, catalog.Titles, broker, appMetrics, bookingCfg)

	auth, err := authService.NewService(cfg.Admin, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up admin login")
	}

	dashboard := dashboardService.NewService(bookings, catalog.Blogs, catalog.Gallery, catalog.Services)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RPS),
			Burst: cfg.RateLimit.Burst,
		})
	}

	r := router.NewRouter(router.Config{
		Mode:           cfg.Server.Mode,
		ServiceName:    serviceName,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxUploadBytes,
		MetricsPath:    cfg.Monitoring.MetricsPath,
		CORS:           middleware.NewCORSConfig(cfg.CORS),
		RateLimiter:    limiter,
	}, auth, httpMetrics, router.Handlers{
		Booking: bookingHandler.NewHandler(bookings),
		Auth:    authHandler.NewHandler(auth),
		Resources: []router.Resource{
			catalogHandler.NewHandler(catalog.Services, "/services", func() *model.Service { return &model.Service{} }),
			catalogHandler.NewHandler(catalog.Blogs, "/blogs", func() *model.Blog { return &model.Blog{} }),
			catalogHandler.NewHandler(catalog.Gallery, "/gallery", func() *model.GalleryImage { return &model.GalleryImage{} }),
			catalogHandler.NewHandler(catalog.FAQs, "/faqs", func() *model.FAQ { return &model.FAQ{} }),
			catalogHandler.NewHandler(catalog.SocialLinks, "/social-links", func() *model.SocialLink { return &model.SocialLink{} }),
			contentHandler.NewHandler[model.HomeContent, *model.HomeContent](content.Home, "/content/home"),
			contentHandler.NewHandler[model.AboutContent, *model.AboutContent](content.About, "/content/about"),
			contentHandler.NewHandler[model.Stats, *model.Stats](content.Stats, "/stats"),
		},
		Dashboard: dashboardHandler.NewHandler(dashboard),
		Health:    health.NewHandler(checks),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Server exited")
}
