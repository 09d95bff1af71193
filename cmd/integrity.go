package cmd

import (
	"context"
	"fmt"

	"booktracker/core/storage"
	"booktracker/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool
var ownerFlag uint

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the database and storage",
	Long:  `Checks the database schema, the export bucket and, with --user, the consistency of a user's library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, ownerFlag != 0)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and fix the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and create the export bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// libraryCmd represents the integrity library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Check and repair a user's library",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ownerFlag == 0 {
			return fmt.Errorf("--user is required")
		}
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&fixFlag, "fix", false, "Fix the problems found")
	integrityCmd.PersistentFlags().UintVar(&ownerFlag, "user", 0, "ID of the user whose library is checked")

	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(storageCmd)
	integrityCmd.AddCommand(libraryCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runSchema, runStorage, runLibrary bool) error {
	cfg, logg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	var store storage.Client
	if runStorage {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return err
		}
	}
	svc := integrity.NewService(store, cfg.Storage, logg, db)

	if runSchema {
		logg.Info("Checking database schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Database schema matches the data model.")
		} else {
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
			if fixFlag {
				logg.Info("Migrating database...")
				if err := svc.FixSchema(ctx); err != nil {
					return err
				}
				logg.Info("Schema fixed successfully.")
			} else {
				logg.Info("Run with --fix to migrate the database.")
			}
		}
	}

	if runStorage {
		logg.Info("Checking export bucket...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return err
		}
		if report.Exists {
			logg.Info("Bucket is present.", zap.Int("exports", report.Exports))
		} else if fixFlag {
			if err := svc.FixStorage(ctx); err != nil {
				return err
			}
			logg.Info("Bucket created successfully.")
		} else {
			logg.Warn("Bucket is missing. Run with --fix to create it.")
		}
	}

	if runLibrary {
		l := logg.With(zap.Uint("owner_id", ownerFlag))
		l.Info("Checking library...")
		report, err := svc.CheckLibrary(ctx, ownerFlag)
		if err != nil {
			return err
		}
		if report.Clean() {
			l.Info("Library is consistent.")
			return nil
		}
		l.Warn("Library inconsistencies found",
			zap.Uints("orphan_authors", report.OrphanAuthors),
			zap.Uints("orphan_tags", report.OrphanTags),
			zap.Uints("orphan_statuses", report.OrphanStatuses),
			zap.Uints("dangling_series", report.DanglingSeries),
			zap.Uints("stale_status", report.StaleStatus),
		)
		if fixFlag {
			if err := svc.FixLibrary(ctx, ownerFlag, report); err != nil {
				return err
			}
			l.Info("Library repaired successfully.")
		} else {
			l.Info("Run with --fix to repair the library.")
		}
	}

	return nil
}
