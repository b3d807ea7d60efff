// ABOUTME: CLI commands for listing entries and today's submissions.
// ABOUTME: Shared text helpers for aligned label/value output live here too.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/harperreed/getfit/internal/models"
	"github.com/spf13/cobra"
)

var (
	listUser  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List daily entries",
	Long: `List recent daily entries, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  USER  WEIGHT  CHECK-INS  WATER TARGET

  Check-ins are W (workout), D (diet), S (slept >7h), H (hydrated);
  a dash marks a missed one.

EXAMPLES:

  getfit list                # Last 20 entries for both users
  getfit list --user Omkar   # Only Omkar
  getfit list -n 50          # Last 50 entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := svc.Entries(listUser, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No entries found.")
			return nil
		}

		for _, e := range entries {
			printEntry(out, e)
		}
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entry for each user",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := svc.TodayEntries()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "Today (%s)\n", svc.Today().Format(models.DateLayout))
		for _, u := range models.AllUsers {
			if e, ok := today[u]; ok {
				printEntry(out, e)
			} else {
				color.New(color.FgYellow).Fprintf(out, "  %s has not submitted today\n", u)
			}
		}
		return nil
	},
}

func printEntry(out io.Writer, e *models.DailyEntry) {
	faint := color.New(color.Faint)
	fmt.Fprintf(out, "%s %s %s %6.1f kg  %s  %s\n",
		faint.Sprint(padRight(fmt.Sprintf("#%d", e.ID), 5)),
		e.DateString(),
		padRight(string(e.User), 7),
		e.Weight,
		checkins(e),
		faint.Sprintf("%.2f L", e.WaterNeeded))
}

func checkins(e *models.DailyEntry) string {
	marks := []struct {
		done bool
		mark string
	}{
		{e.WorkoutDone, "W"},
		{e.DietDone, "D"},
		{e.Slept7h, "S"},
		{e.DrankWater, "H"},
	}
	var sb strings.Builder
	for _, m := range marks {
		if m.done {
			sb.WriteString(m.mark)
		} else {
			sb.WriteString("-")
		}
	}
	return sb.String()
}

func printPairs(out io.Writer, pairs []dashboard.Pair) {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p.Label))
	}
	for _, p := range pairs {
		fmt.Fprintf(out, "  %s  %s\n", color.New(color.Faint).Sprint(padRight(p.Label+":", width+1)), p.Value)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVarP(&listUser, "user", "u", "", "only list entries of this user")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(todayCmd)
}
