package main

import (
	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			database, err := connect(cfg, true)
			if err != nil {
				return err
			}
			defer database.Close()

			logger.Info("database is up to date")
			return nil
		},
	}
}
