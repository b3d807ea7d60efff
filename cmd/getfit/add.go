// ABOUTME: CLI command for submitting a daily entry.
// ABOUTME: Prints the stored entry and the derived height, BMI, and water figures.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	addWorkout bool
	addDiet    bool
	addSlept   bool
	addWater   bool
	addDate    string
)

var addCmd = &cobra.Command{
	Use:     "add <user> <weight>",
	Aliases: []string{"a"},
	Short:   "Submit a daily entry",
	Long: `Submit today's entry for a user. Weight is in kg (30 to 200).

Submitting twice for the same day is allowed; the latest submission wins
in every view.

Examples:
  getfit add Omkar 88.5
  getfit add prutha 69.2 --workout --diet --slept --water
  getfit add Omkar 88.1 --date 2024-03-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}

		e, err := svc.Submit(dashboard.SubmissionInput{
			User:        args[0],
			Weight:      weight,
			WorkoutDone: addWorkout,
			DietDone:    addDiet,
			Slept7h:     addSlept,
			DrankWater:  addWater,
			Date:        addDate,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		color.New(color.FgGreen).Fprintf(out, "✓ Added entry for %s on %s\n", e.User, e.DateString())
		fmt.Fprintf(out, "  %s %.1f kg\n", faint.Sprintf("#%d", e.ID), e.Weight)

		pairs, err := svc.SubmissionView(string(e.User), e.Weight)
		if err != nil {
			return err
		}
		printPairs(out, pairs)
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&addWorkout, "workout", false, "workout done")
	addCmd.Flags().BoolVar(&addDiet, "diet", false, "diet followed")
	addCmd.Flags().BoolVar(&addSlept, "slept", false, "slept more than 7 hours")
	addCmd.Flags().BoolVar(&addWater, "water", false, "drank the recommended water")
	addCmd.Flags().StringVar(&addDate, "date", "", "entry date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(addCmd)
}
