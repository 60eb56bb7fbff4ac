package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/komalrathore0521/BookVenue/internal/booking"
	"github.com/komalrathore0521/BookVenue/internal/config"
	"github.com/komalrathore0521/BookVenue/internal/db"
	"github.com/komalrathore0521/BookVenue/internal/events"
	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/komalrathore0521/BookVenue/internal/venue"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookvenue",
		Short:         "Venue catalogue and booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookvenue %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func connect(cfg *config.Config, migrate bool) (*sqlx.DB, error) {
	logger.Info("connecting to database")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("migrations completed", "path", cfg.MigrationsPath)
	}

	return database, nil
}

type services struct {
	venues   venue.Service
	bookings booking.Service
}

func newServices(database *sqlx.DB, notifier booking.Notifier, publisher events.Publisher) services {
	tx := db.NewTxManager(database)
	venueRepo := venue.NewRepository(database)

	return services{
		venues:   venue.NewService(venueRepo, tx),
		bookings: booking.NewService(booking.NewRepository(database), venueRepo, tx, notifier, publisher),
	}
}
