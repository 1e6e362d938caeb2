package main

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/site-backend/internal/config"
	"github.com/BruksfildServices01/site-backend/internal/db"
	"github.com/BruksfildServices01/site-backend/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logging.New(cfg.Logging)

		gdb, err := db.NewDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.Migrate(gdb); err != nil {
			return err
		}
		log.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
