package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/komalrathore0521/BookVenue/internal/booking"
	"github.com/komalrathore0521/BookVenue/internal/config"
	"github.com/komalrathore0521/BookVenue/internal/email"
	"github.com/komalrathore0521/BookVenue/internal/events"
	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/komalrathore0521/BookVenue/internal/seed"
	"github.com/komalrathore0521/BookVenue/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var migrate, seedData bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seedData = cfg.SeedOnStartup
			}
			return serve(cfg, migrate, seedData)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations on startup")
	cmd.Flags().BoolVar(&seedData, "seed", false, "seed sample venues when the store is empty (default SEED_ON_STARTUP)")
	return cmd
}

func serve(cfg *config.Config, migrate, seedData bool) error {
	logger.Info("starting BookVenue", "version", Version)

	database, err := connect(cfg, migrate)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var notifier booking.Notifier
	if cfg.EmailEnabled {
		emailService := email.New(
			cfg.EmailFrom,
			cfg.EmailFromName,
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.RedisAddr,
		)
		defer emailService.Close()

		if err := emailService.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, confirmations will fail to queue", "addr", cfg.RedisAddr, "error", err)
		}
		go emailService.Start(ctx)
		notifier = emailService
		logger.Info("email service initialized")
	}

	publisher, err := events.New(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()
	logger.Info("event publisher initialized", "broker", cfg.EventsBroker)

	svc := newServices(database, notifier, publisher)

	if seedData {
		if _, err := seed.Run(ctx, svc.venues, svc.bookings); err != nil {
			return err
		}
	}

	srv := server.New(cfg, database, svc.venues, svc.bookings)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("received signal", "signal", sig.String())
	case runErr = <-serverErrChan:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server stopped")
	return runErr
}
