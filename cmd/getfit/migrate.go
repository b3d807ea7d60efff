// ABOUTME: CLI command for moving data between storage backends.
// ABOUTME: Copies entries (keeping IDs) and the meal plan into an empty destination.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/config"
	"github.com/harperreed/getfit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateToDir  string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every entry and the meal plan from the current backend to another one.

Entry IDs are kept so the latest submission for a day still wins after the
move. The destination directory must be empty unless --force is given.

USAGE:

  getfit migrate --to markdown --to-dir ~/getfit-notes
  getfit migrate --to sqlite --to-dir ~/.local/share/getfit-sqlite --switch

With --switch the config file is updated to use the new backend afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == "" || migrateToDir == "" {
			return fmt.Errorf("--to and --to-dir are required")
		}
		if migrateTo != "sqlite" && migrateTo != "markdown" {
			return fmt.Errorf("unknown backend: %q (use sqlite or markdown)", migrateTo)
		}

		dstDir := config.ExpandPath(migrateToDir)
		if migrateTo == cfg.GetBackend() && filepath.Clean(dstDir) == filepath.Clean(cfg.GetDataDir()) {
			return fmt.Errorf("source and destination are the same")
		}

		if !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(dstDir)
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty (use --force to migrate anyway)", dstDir)
			}
		}

		dst, err := config.OpenBackend(migrateTo, dstDir)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %d entries and %d meal plan days to %s (%s)\n",
			summary.Entries, summary.MealPlanDays, migrateTo, dstDir)

		if migrateSwitch {
			onDisk, err := config.Load()
			if err != nil {
				return err
			}
			onDisk.Backend = migrateTo
			onDisk.DataDir = dstDir
			if err := onDisk.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(out, "  config now uses %s at %s\n", migrateTo, dstDir)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite or markdown")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate into a non-empty directory")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "point the config file at the destination afterwards")
	rootCmd.AddCommand(migrateCmd)
}
