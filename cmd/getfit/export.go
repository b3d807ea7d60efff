// ABOUTME: CLI commands for exporting and importing getfit data.
// ABOUTME: Supports JSON, YAML, Markdown, and Excel export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportUser   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export getfit data",
	Long: `Export entries and the meal plan in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by user (human-readable)
  markdown   Markdown tables (for documentation/sharing)
  xlsx       Excel workbook, one sheet per user plus the meal plan (needs -o)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --user, -u     Only this user's entries (markdown only)
  --since        Only include entries since this date (markdown only)

EXAMPLES:

  getfit export json -o backup.json
  getfit export yaml
  getfit export markdown --user Prutha --since 2024-01-01
  getfit export xlsx -o getfit.xlsx`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "xlsx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			var user *models.User
			if exportUser != "" {
				u, perr := models.ParseUser(exportUser)
				if perr != nil {
					return perr
				}
				user = &u
			}
			var since *time.Time
			if exportSince != "" {
				t, perr := models.ParseDate(exportSince)
				if perr != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(repo, user, since)
			data = []byte(md)
		case "xlsx":
			if exportOutput == "" {
				return fmt.Errorf("xlsx export needs --output")
			}
			data, err = storage.ExportXLSX(repo)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or xlsx)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import getfit data from JSON",
	Long: `Import entries and the meal plan from a JSON backup file.

Imported entries get new IDs in their original order, so the latest
submission for a day still wins. A meal plan in the file replaces the
current one.

EXAMPLES:

  getfit import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "", "only this user's entries (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include entries since date (YYYY-MM-DD, markdown only)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
