package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/listing"
	"github.com/dekoratoriai/storefront/internal/notify"
	inquirysqlite "github.com/dekoratoriai/storefront/internal/notify/inquirylog/sqlite"
	"github.com/dekoratoriai/storefront/internal/pkg/config"
	"github.com/dekoratoriai/storefront/internal/pkg/telemetry"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/adapters/service"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/httpx"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := telemetry.InitLogger(cfg.LogLevel)
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var shutdownTracer telemetry.ShutdownFunc = telemetry.NoopShutdown
	if cfg.TracingEnabled {
		shutdownTracer, err = telemetry.SetupTracer(ctx, cfg.ServiceName)
		if err != nil {
			return err
		}
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("shutdown tracer", "error", err)
		}
	}()

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	cat, err := buildCatalog(cfg, be.cache)
	if err != nil {
		return err
	}

	views, err := listing.NewViews(cfg.ListingSessions, cfg.LoadMoreDelay)
	if err != nil {
		return err
	}

	appointments, closeAppointments, err := buildNotifier(cfg)
	if err != nil {
		return err
	}
	defer closeAppointments()

	handler := httpx.NewHandler(
		cat,
		views,
		service.NewSessionService(be.store),
		appointments,
		httpx.WithIdempotency(be.cache, cfg.IdempotencyTTL),
	)
	router := httpx.NewRouter(handler, identity.NewMiddleware(cfg.JWTSecret))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(router, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", cfg.HTTPAddr, "storage", cfg.Storage.Driver)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func buildNotifier(cfg *config.Config) (*notify.Service, func(), error) {
	mailer := &notify.SMTPMailer{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
	}

	operator := cfg.Mail.User
	if operator == "" {
		operator = cfg.Mail.MailFrom()
	}

	if cfg.InquiryLogPath == "" {
		return notify.NewService(mailer, cfg.Mail.MailFrom(), operator), func() {}, nil
	}

	repo, err := inquirysqlite.Open(cfg.InquiryLogPath)
	if err != nil {
		return nil, nil, err
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			slog.Warn("close inquiry log", "error", err)
		}
	}
	return notify.NewService(mailer, cfg.Mail.MailFrom(), operator, notify.WithInquiryLog(repo)), closeRepo, nil
}
