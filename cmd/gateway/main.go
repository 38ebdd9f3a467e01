package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/api"
	"github.com/estatehub/realty-platform/internal/api/handler"
	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/gateway"
	"github.com/estatehub/realty-platform/internal/infrastructure/config"
	redisdb "github.com/estatehub/realty-platform/internal/infrastructure/db/redis"
	"github.com/estatehub/realty-platform/internal/infrastructure/queue"
	"github.com/estatehub/realty-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "realty-gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sessions live in Redis; the gateway cannot run without it.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	dispatcher := queue.NewDispatcher(0, log)
	dispatcher.Start(ctx)

	// The auth client doubles as the token verifier: it satisfies the
	// same interface as the local HS256 verifier by POSTing
	// /auth/verify to the auth service.
	authClient := client.NewAuthClient(cfg.Peers.AuthURL)

	gw := gateway.New(gateway.Deps{
		Auth:          authClient,
		Properties:    client.NewPropertyClient(cfg.Peers.PropertyURL),
		Inquiries:     client.NewInquiryClient(cfg.Peers.InquiryURL),
		Notifications: client.NewNotificationClient(cfg.Peers.NotificationURL),
		Analytics:     client.NewAnalyticsClient(cfg.Peers.AnalyticsURL),
		Search:        client.NewSearchClient(cfg.Peers.SearchURL),
		Payments:      client.NewPaymentClient(cfg.Peers.PaymentURL),
		Reports:       client.NewReportingClient(cfg.Peers.ReportingURL),
		Sessions:      redisdb.NewSessionStore(rdb),
		Dispatcher:    dispatcher,
		Verifier:      authClient,
		Log:           log,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	gw.Routes(e)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("gateway listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	waitForShutdown(log)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
