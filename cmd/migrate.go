package main

import (
	"healthtracker/config"
	"healthtracker/logging"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

		db, err := config.OpenDatabase(cfg.Database)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(db)

		if err := config.Migrate(db); err != nil {
			return err
		}
		logging.Info().Str("db_driver", cfg.Database.Driver).Msg("migrations applied")
		return nil
	},
}
