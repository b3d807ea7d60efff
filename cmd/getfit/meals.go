// ABOUTME: CLI commands for the weekly meal plan and the grocery prompt.
// ABOUTME: meals lists the plan, meals set edits one slot, grocery prints the LLM prompt.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/getfit/internal/models"
	"github.com/spf13/cobra"
)

var mealsFull bool

var mealsCmd = &cobra.Command{
	Use:     "meals",
	Aliases: []string{"m"},
	Short:   "Show the weekly meal plan",
	Long: `Show the shared weekly meal plan, Monday through Sunday.

Long entries are shortened; use --full to print them whole.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := svc.MealPlan()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for i, m := range plan {
			if i > 0 {
				fmt.Fprintln(out)
			}
			bold.Fprintln(out, m.Day)
			for _, f := range models.MealFields {
				text := m.Get(f)
				if !mealsFull {
					text = truncate(text, 48)
				}
				fmt.Fprintf(out, "  %s %s\n", faint.Sprint(padRight(models.MealFieldLabels[f]+":", 19)), text)
			}
		}
		return nil
	},
}

var mealsSetCmd = &cobra.Command{
	Use:   "set <day> <field> <text...>",
	Short: "Change one meal slot",
	Long: `Change one slot of one day of the meal plan.

FIELDS:

  wakeup_drink, breakfast, mid_morning_snack, lunch, snack, dinner
  (display labels such as "Mid-Morning Snack" work too)

EXAMPLES:

  getfit meals set monday dinner Khichdi with curd
  getfit meals set Sat "Mid-Morning Snack" "1 apple"`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, field, err := svc.SetMealField(args[0], args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s %s: %s\n",
			m.Day, models.MealFieldLabels[field], m.Get(field))
		return nil
	},
}

var groceryCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Print a grocery-list prompt for the meal plan",
	Long: `Print a prompt that asks an LLM to turn the weekly meal plan into a
consolidated grocery list. Pipe it into your assistant of choice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := svc.GroceryPrompt()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		return nil
	},
}

func init() {
	mealsCmd.Flags().BoolVar(&mealsFull, "full", false, "print entries without shortening")
	mealsCmd.AddCommand(mealsSetCmd)
	rootCmd.AddCommand(mealsCmd)
	rootCmd.AddCommand(groceryCmd)
}
