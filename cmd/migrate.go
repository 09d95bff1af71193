package cmd

import (
	"booktracker/core/database"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logg.Info("Database migrated")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
