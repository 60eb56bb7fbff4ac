package main

import (
	"fmt"

	"github.com/komalrathore0521/BookVenue/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample venues when the venue store is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			database, err := connect(cfg, migrate)
			if err != nil {
				return err
			}
			defer database.Close()

			svc := newServices(database, nil, nil)
			n, err := seed.Run(cmd.Context(), svc.venues, svc.bookings)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d venues\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations first")
	return cmd
}
