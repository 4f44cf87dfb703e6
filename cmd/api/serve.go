package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-widget/internal/audit"
	"github.com/BruksfildServices01/booking-widget/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-widget/internal/db"
	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	"github.com/BruksfildServices01/booking-widget/internal/handlers"
	"github.com/BruksfildServices01/booking-widget/internal/infra/cache"
	"github.com/BruksfildServices01/booking-widget/internal/infra/repository"
	"github.com/BruksfildServices01/booking-widget/internal/logging"
	"github.com/BruksfildServices01/booking-widget/internal/metrics"
	"github.com/BruksfildServices01/booking-widget/internal/middleware"
	"github.com/BruksfildServices01/booking-widget/internal/notify"
	"github.com/BruksfildServices01/booking-widget/internal/routes"
	"github.com/BruksfildServices01/booking-widget/internal/session"
	"github.com/BruksfildServices01/booking-widget/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/booking-widget/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/booking-widget/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-widget/internal/widget"
)

const sweepInterval = time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the widget HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, config.Load())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !timezone.IsValid(cfg.Timezone) {
		logger.Warn("unknown timezone, using local time", zap.String("timezone", cfg.Timezone))
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	// ======================================================
	// INFRA
	// ======================================================
	var calendarCache ucAvailability.CalendarCache
	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()
	redisCache := cache.NewCalendarRedis(redisClient)

	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, calendar cache disabled", zap.Error(err))
	} else {
		calendarCache = redisCache
	}
	pingCancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(reg)

	bookingRepo := repository.NewBookingGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	mailer := notify.NewEmailSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)

	// ======================================================
	// USE CASES
	// ======================================================
	getCalendar, err := ucAvailability.NewGetCalendar(
		ucAvailability.GetCalendarInput{
			Schedule: availability.Schedule{
				Open:         cfg.OpenTime,
				Close:        cfg.CloseTime,
				SlotDuration: cfg.SlotDuration(),
			},
			WindowDays: cfg.WindowDays,
			PolicyName: cfg.AvailabilityPolicy,
			Ratio:      cfg.AvailabilityRatio,
			Seed:       cfg.AvailabilitySeed,
			CacheTTL:   cfg.CalendarTTL,
		},
		calendarCache,
		bookingRepo,
		bookingMetrics,
		logger,
	)
	if err != nil {
		return fmt.Errorf("calendar setup: %w", err)
	}

	submitBooking := ucBooking.NewSubmitBooking(
		bookingRepo,
		mailer,
		auditDispatcher,
		getCalendar,
		bookingMetrics,
		logger,
		cfg.SlotDuration(),
	)

	// ======================================================
	// HTTP
	// ======================================================
	store := session.NewStore(cfg.SessionTTL)

	widgetHandler := handlers.NewWidgetHandler(
		handlers.WidgetHandlerConfig{
			JWTSecret:     cfg.JWTSecret,
			SessionTTL:    cfg.SessionTTL,
			SubmitTimeout: cfg.SubmitTimeout,
			Location:      timezone.Location(cfg.Timezone),
		},
		store,
		getCalendar,
		submitBooking,
		widget.NewKeyRing(cfg.WidgetAPIKeys),
		auditDispatcher,
		bookingMetrics,
		logger,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	routes.RegisterRoutes(r, widgetHandler, cfg.JWTSecret, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go sweepSessions(ctx, store, bookingMetrics, auditDispatcher, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func sweepSessions(
	ctx context.Context,
	store *session.Store,
	m *metrics.BookingMetrics,
	dispatcher *audit.Dispatcher,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := store.Sweep()
			for _, id := range removed {
				m.ObserveSession("expired")
				dispatcher.Dispatch(audit.Event{
					SessionID: id,
					Action:    audit.ActionSessionExpired,
					Entity:    "session",
				})
			}
			if len(removed) > 0 {
				logger.Info("idle sessions removed", zap.Int("count", len(removed)))
			}
		}
	}
}
