// ABOUTME: MCP tool implementations for getfit.
// ABOUTME: Daily submissions, progress views, the meal plan, and workout plans.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/harperreed/getfit/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_entry",
		Description: "Record a daily entry (weight and habit check-ins) for Omkar or Prutha",
	}, s.handleAddEntry)

	// list_entries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List recent daily entries, newest first, optionally for one user",
	}, s.handleListEntries)

	// get_home
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_home",
		Description: "Get the progress overview: habit summary, goal progress, challenge countdown and charts",
	}, s.handleGetHome)

	// get_progress
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get one user's gap-filled daily series (weight, BMI, habits)",
	}, s.handleGetProgress)

	// get_meal_plan
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_meal_plan",
		Description: "Get the weekly meal plan, Monday through Sunday",
	}, s.handleGetMealPlan)

	// update_meal_plan_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_meal_plan_day",
		Description: "Change one meal slot of one day of the weekly meal plan",
	}, s.handleUpdateMealPlanDay)

	// get_grocery_prompt
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_grocery_prompt",
		Description: "Build a prompt that asks an LLM for a grocery list covering the weekly meal plan",
	}, s.handleGetGroceryPrompt)

	// get_workout_plan
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout_plan",
		Description: "Get the static weekly workout plan of a user",
	}, s.handleGetWorkoutPlan)
}

// Input types

type addEntryInput struct {
	User        string  `json:"user" jsonschema:"User name: Omkar or Prutha"`
	Weight      float64 `json:"weight" jsonschema:"Body weight in kg (30 to 200)"`
	WorkoutDone bool    `json:"workout_done,omitempty" jsonschema:"Workout completed today"`
	DietDone    bool    `json:"diet_done,omitempty" jsonschema:"Diet followed today"`
	Slept7h     bool    `json:"slept_7h,omitempty" jsonschema:"Slept more than 7 hours"`
	DrankWater  bool    `json:"drank_water,omitempty" jsonschema:"Drank the recommended water"`
	Date        string  `json:"date,omitempty" jsonschema:"Entry date as YYYY-MM-DD (default today)"`
}

type listEntriesInput struct {
	User  string `json:"user,omitempty" jsonschema:"Only list entries of this user"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type userInput struct {
	User string `json:"user" jsonschema:"User name: Omkar or Prutha"`
}

type emptyInput struct{}

type updateMealInput struct {
	Day   string `json:"day" jsonschema:"Weekday name, e.g. Monday"`
	Field string `json:"field" jsonschema:"Meal slot: wakeup_drink, breakfast, mid_morning_snack, lunch, snack or dinner"`
	Text  string `json:"text" jsonschema:"New text for the slot"`
}

// Output types

type entryOutput struct {
	ID          int64   `json:"id"`
	User        string  `json:"user"`
	Date        string  `json:"date"`
	Weight      float64 `json:"weight"`
	WaterNeeded float64 `json:"water_needed"`
	Message     string  `json:"message"`
}

type promptOutput struct {
	Prompt string `json:"prompt"`
}

// Tool handlers

func (s *Server) handleAddEntry(ctx context.Context, req *mcp.CallToolRequest, input addEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	logger := callLogger("tool", "add_entry")

	e, err := s.svc.Submit(dashboard.SubmissionInput{
		User:        input.User,
		Weight:      input.Weight,
		WorkoutDone: input.WorkoutDone,
		DietDone:    input.DietDone,
		Slept7h:     input.Slept7h,
		DrankWater:  input.DrankWater,
		Date:        input.Date,
	})
	if err != nil {
		logger.WithError(err).Warn("add entry rejected")
		return nil, entryOutput{}, fmt.Errorf("failed to add entry: %w", err)
	}

	logger.WithField("id", e.ID).Debug("entry added")
	return nil, entryOutput{
		ID:          e.ID,
		User:        string(e.User),
		Date:        e.DateString(),
		Weight:      e.Weight,
		WaterNeeded: e.WaterNeeded,
		Message:     fmt.Sprintf("Added entry for %s on %s: %.1f kg (ID: %d)", e.User, e.DateString(), e.Weight, e.ID),
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	entries, err := s.svc.Entries(input.User, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No entries found."}, nil
	}

	return nil, map[string]interface{}{"entries": entries, "count": len(entries)}, nil
}

func (s *Server) handleGetHome(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	home, err := s.svc.Home()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build home view: %w", err)
	}
	return nil, home, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	series, err := s.svc.Progress(input.User)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get progress: %w", err)
	}

	if len(series) == 0 {
		return nil, map[string]interface{}{"message": fmt.Sprintf("No data for %s.", input.User)}, nil
	}

	return nil, map[string]interface{}{"user": input.User, "points": series}, nil
}

func (s *Server) handleGetMealPlan(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	plan, err := s.svc.MealPlan()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return nil, map[string]interface{}{"days": plan}, nil
}

func (s *Server) handleUpdateMealPlanDay(ctx context.Context, req *mcp.CallToolRequest, input updateMealInput) (*mcp.CallToolResult, any, error) {
	logger := callLogger("tool", "update_meal_plan_day")

	m, field, err := s.svc.SetMealField(input.Day, input.Field, input.Text)
	if err != nil {
		logger.WithError(err).Warn("meal plan update rejected")
		return nil, nil, fmt.Errorf("failed to update meal plan: %w", err)
	}

	return nil, map[string]interface{}{
		"day":     m,
		"message": fmt.Sprintf("Updated %s %s", m.Day, models.MealFieldLabels[field]),
	}, nil
}

func (s *Server) handleGetGroceryPrompt(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, promptOutput, error) {
	prompt, err := s.svc.GroceryPrompt()
	if err != nil {
		return nil, promptOutput{}, fmt.Errorf("failed to build grocery prompt: %w", err)
	}
	return nil, promptOutput{Prompt: prompt}, nil
}

func (s *Server) handleGetWorkoutPlan(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	plan, err := s.svc.WorkoutPlan(input.User)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout plan: %w", err)
	}
	return nil, plan, nil
}
