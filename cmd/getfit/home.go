// ABOUTME: CLI commands for the progress overview and per-user daily series.
// ABOUTME: Renders dashboard views as aligned text.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/models"
	"github.com/spf13/cobra"
)

var homeCmd = &cobra.Command{
	Use:     "home",
	Aliases: []string{"h", "summary"},
	Short:   "Show the progress overview",
	Long: `Show the challenge countdown and, for each user, habit counts over the
recorded period, latest weight, BMI, and goal progress.

Goal progress needs a target weight in the config file:

  {
    "profiles": {
      "Omkar": { "start_weight": 92, "target_weight": 80 }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := svc.Home()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if home.Empty {
			color.New(color.FgYellow).Fprintln(out, home.Message)
			return nil
		}

		bold := color.New(color.Bold)
		bold.Fprintln(out, "Challenge")
		printPairs(out, home.Countdown)

		for _, u := range home.Users {
			fmt.Fprintln(out)
			bold.Fprintln(out, u.User)
			if u.NoData {
				color.New(color.Faint).Fprintln(out, "  no entries yet")
				continue
			}
			printPairs(out, u.Summary)
			printPairs(out, u.Goal)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <user>",
	Short: "Show a user's daily series",
	Long: `Show one row per calendar day from the first entry through today.

Days without an entry repeat the previous day's values and are marked
with a dash in the last column. BMI is blank when it cannot be computed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := svc.Progress(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(series) == 0 {
			fmt.Fprintf(out, "No entries for %s.\n", args[0])
			return nil
		}

		faint := color.New(color.Faint)
		faint.Fprintln(out, "DATE        WEIGHT   BMI    WDSH  WATER   OBS")
		for _, p := range series {
			bmi := "     "
			if p.HasBMI {
				bmi = fmt.Sprintf("%5.2f", p.BMI)
			}
			observed := "✓"
			if !p.Observed {
				observed = faint.Sprint("-")
			}
			flags := checkins(&models.DailyEntry{
				WorkoutDone: p.WorkoutDone,
				DietDone:    p.DietDone,
				Slept7h:     p.Slept7h,
				DrankWater:  p.DrankWater,
			})
			fmt.Fprintf(out, "%s  %6.1f  %s  %s  %4.2f L  %s\n",
				p.Date.Format(models.DateLayout), p.Weight, bmi, flags, p.WaterNeeded, observed)
		}
		return nil
	},
}

var workoutCmd = &cobra.Command{
	Use:     "workout <user>",
	Aliases: []string{"w"},
	Short:   "Show a user's weekly workout plan",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := svc.WorkoutPlan(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintf(out, "Workout plan for %s\n", plan.User)
		if plan.Caution != "" {
			color.New(color.FgRed).Fprintf(out, "⚠ %s\n", plan.Caution)
		}

		fmt.Fprintln(out)
		bold.Fprintln(out, "Focus")
		for _, f := range plan.Focus {
			fmt.Fprintf(out, "  • %s\n", f)
		}

		fmt.Fprintln(out)
		bold.Fprintln(out, "Weekly routine")
		printPairs(out, plan.Routine)

		fmt.Fprintln(out)
		bold.Fprintln(out, "Tips")
		for _, tip := range plan.Tips {
			fmt.Fprintf(out, "  • %s\n", tip)
		}

		fmt.Fprintln(out)
		color.New(color.Faint).Fprintln(out, plan.Note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(workoutCmd)
}
