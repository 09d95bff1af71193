package cmd

import (
	"booktracker/core/storage"
	"booktracker/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportUserFlag uint

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot of a user's library to the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		if _, err := storage.EnsureBucket(cmd.Context(), store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return err
		}

		result, err := export.NewService(db, store, cfg.Storage, logg).Export(cmd.Context(), exportUserFlag)
		if err != nil {
			return err
		}
		logg.Info("Export written",
			zap.String("object", result.Object),
			zap.Int("books", result.Books),
			zap.Int("series", result.Series),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().UintVar(&exportUserFlag, "user", 0, "ID of the user to export")
	_ = exportCmd.MarkFlagRequired("user")
	RootCmd.AddCommand(exportCmd)
}
