// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers over a real SQLite store.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/getfit/internal/config"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testToday = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// setupTestServer creates a server over a seeded SQLite store in a temp directory.
func setupTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "getfit-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "getfit.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.ReseedMealPlan(models.DefaultMealPlan(), true); err != nil {
		t.Fatalf("Failed to seed meal plan: %v", err)
	}

	svc := dashboard.NewService(db, cfg, dashboard.WithClock(func() time.Time { return testToday }))
	server, err := NewServer(svc)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func addEntry(t *testing.T, s *Server, user, date string, weight float64) entryOutput {
	t.Helper()
	_, out, err := s.handleAddEntry(context.Background(), &mcp.CallToolRequest{}, addEntryInput{
		User:   user,
		Weight: weight,
		Date:   date,
	})
	if err != nil {
		t.Fatalf("handleAddEntry failed: %v", err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t, nil)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.svc == nil {
		t.Error("Expected non-nil svc")
	}
}

func TestHandleAddEntry(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addEntryInput
		wantErr   bool
		errSubstr string
		wantDate  string
	}{
		{
			name:     "defaults to today",
			input:    addEntryInput{User: "Omkar", Weight: 90, WorkoutDone: true},
			wantDate: "2024-03-10",
		},
		{
			name:     "explicit date",
			input:    addEntryInput{User: "Prutha", Weight: 70, Date: "2024-03-01"},
			wantDate: "2024-03-01",
		},
		{
			name:     "user name is case-insensitive",
			input:    addEntryInput{User: "prutha", Weight: 70},
			wantDate: "2024-03-10",
		},
		{
			name:      "unknown user",
			input:     addEntryInput{User: "Bob", Weight: 80},
			wantErr:   true,
			errSubstr: "unknown user",
		},
		{
			name:      "weight out of range",
			input:     addEntryInput{User: "Omkar", Weight: 250},
			wantErr:   true,
			errSubstr: "weight",
		},
		{
			name:      "bad date",
			input:     addEntryInput{User: "Omkar", Weight: 90, Date: "10/03/2024"},
			wantErr:   true,
			errSubstr: "invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddEntry(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.ID == 0 {
				t.Error("Expected non-zero ID")
			}
			if output.Date != tt.wantDate {
				t.Errorf("Date = %s, want %s", output.Date, tt.wantDate)
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}
		})
	}
}

func TestHandleAddEntryStoresWaterTarget(t *testing.T) {
	server := setupTestServer(t, nil)

	out := addEntry(t, server, "Omkar", "", 90)
	if out.WaterNeeded != 3.15 {
		t.Errorf("WaterNeeded = %v, want 3.15", out.WaterNeeded)
	}
}

func TestHandleAddEntryUnknownUserIsSentinel(t *testing.T) {
	server := setupTestServer(t, nil)

	_, _, err := server.handleAddEntry(context.Background(), &mcp.CallToolRequest{}, addEntryInput{User: "Bob", Weight: 80})
	if !errors.Is(err, models.ErrUnknownUser) {
		t.Errorf("Expected ErrUnknownUser, got %v", err)
	}
}

func TestHandleListEntries(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	addEntry(t, server, "Omkar", "2024-03-01", 90)
	addEntry(t, server, "Omkar", "2024-03-02", 89.5)
	addEntry(t, server, "Prutha", "2024-03-02", 70)

	tests := []struct {
		name      string
		input     listEntriesInput
		wantCount int
	}{
		{"all users", listEntriesInput{}, 3},
		{"one user", listEntriesInput{User: "Omkar"}, 2},
		{"limit", listEntriesInput{Limit: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleListEntries(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			result, ok := output.(map[string]interface{})
			if !ok {
				t.Fatalf("Expected map output, got %T", output)
			}
			if result["count"] != tt.wantCount {
				t.Errorf("count = %v, want %d", result["count"], tt.wantCount)
			}
		})
	}
}

func TestHandleListEntriesNewestFirst(t *testing.T) {
	server := setupTestServer(t, nil)

	addEntry(t, server, "Omkar", "2024-03-01", 90)
	addEntry(t, server, "Omkar", "2024-03-05", 88)

	_, output, err := server.handleListEntries(context.Background(), &mcp.CallToolRequest{}, listEntriesInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	entries := output.(map[string]interface{})["entries"].([]*models.DailyEntry)
	if entries[0].DateString() != "2024-03-05" {
		t.Errorf("Expected newest entry first, got %s", entries[0].DateString())
	}
}

func TestHandleListEntriesEmpty(t *testing.T) {
	server := setupTestServer(t, nil)

	_, output, err := server.handleListEntries(context.Background(), &mcp.CallToolRequest{}, listEntriesInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	result := output.(map[string]interface{})
	if result["message"] != "No entries found." {
		t.Errorf("Expected empty message, got %v", result)
	}
}

func TestHandleListEntriesUnknownUser(t *testing.T) {
	server := setupTestServer(t, nil)

	_, _, err := server.handleListEntries(context.Background(), &mcp.CallToolRequest{}, listEntriesInput{User: "Bob"})
	if err == nil {
		t.Error("Expected error for unknown user")
	}
}

func TestHandleGetHome(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	_, output, err := server.handleGetHome(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	home := output.(*dashboard.HomeView)
	if !home.Empty || home.Message != dashboard.NoDataMessage {
		t.Errorf("Expected empty home view, got %+v", home)
	}

	addEntry(t, server, "Omkar", "2024-03-08", 90)

	_, output, err = server.handleGetHome(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	home = output.(*dashboard.HomeView)
	if home.Empty {
		t.Error("Expected non-empty home view")
	}
	if home.TotalDays != 1 {
		t.Errorf("TotalDays = %d, want 1", home.TotalDays)
	}
	if len(home.Users) != len(models.AllUsers) {
		t.Errorf("Expected %d user sections, got %d", len(models.AllUsers), len(home.Users))
	}
}

func TestHandleGetProgress(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	addEntry(t, server, "Omkar", "2024-03-08", 90)

	_, output, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, userInput{User: "Omkar"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result := output.(map[string]interface{})
	if result["points"] == nil {
		t.Fatalf("Expected points in output, got %v", result)
	}

	_, output, err = server.handleGetProgress(ctx, &mcp.CallToolRequest{}, userInput{User: "Prutha"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := output.(map[string]interface{})["message"]; !ok {
		t.Errorf("Expected no-data message for Prutha, got %v", output)
	}

	if _, _, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, userInput{User: "Bob"}); err == nil {
		t.Error("Expected error for unknown user")
	}
}

func TestHandleGetMealPlan(t *testing.T) {
	server := setupTestServer(t, nil)

	_, output, err := server.handleGetMealPlan(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	days := output.(map[string]interface{})["days"].([]*models.MealPlanEntry)
	if len(days) != 7 {
		t.Fatalf("Expected 7 days, got %d", len(days))
	}
	if days[0].Day != models.Monday || days[6].Day != models.Sunday {
		t.Errorf("Expected Monday..Sunday order, got %s..%s", days[0].Day, days[6].Day)
	}
}

func TestHandleUpdateMealPlanDay(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	_, output, err := server.handleUpdateMealPlanDay(ctx, &mcp.CallToolRequest{}, updateMealInput{
		Day:   "monday",
		Field: "Dinner",
		Text:  "Khichdi",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if msg := output.(map[string]interface{})["message"]; msg != "Updated Monday Dinner" {
		t.Errorf("message = %v", msg)
	}

	plan, err := server.svc.MealPlan()
	if err != nil {
		t.Fatalf("MealPlan failed: %v", err)
	}
	m := plan[0]
	if m.Dinner != "Khichdi" {
		t.Errorf("Dinner = %q, want Khichdi", m.Dinner)
	}
}

func TestHandleUpdateMealPlanDayFieldKey(t *testing.T) {
	server := setupTestServer(t, nil)

	_, output, err := server.handleUpdateMealPlanDay(context.Background(), &mcp.CallToolRequest{}, updateMealInput{
		Day:   "Sat",
		Field: "mid_morning_snack",
		Text:  "1 apple",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if msg := output.(map[string]interface{})["message"]; msg != "Updated Saturday Mid-Morning Snack" {
		t.Errorf("message = %v", msg)
	}
}

func TestHandleUpdateMealPlanDayErrors(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input updateMealInput
	}{
		{"unknown day", updateMealInput{Day: "Funday", Field: "dinner", Text: "x"}},
		{"unknown field", updateMealInput{Day: "Monday", Field: "supper", Text: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := server.handleUpdateMealPlanDay(ctx, &mcp.CallToolRequest{}, tt.input); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestHandleUpdateMealPlanDayEditsDisabled(t *testing.T) {
	preserve := false
	server := setupTestServer(t, &config.Config{PreserveUserEdits: &preserve})

	_, _, err := server.handleUpdateMealPlanDay(context.Background(), &mcp.CallToolRequest{}, updateMealInput{
		Day: "Monday", Field: "dinner", Text: "Khichdi",
	})
	if !errors.Is(err, dashboard.ErrEditsNotPreserved) {
		t.Errorf("Expected ErrEditsNotPreserved, got %v", err)
	}
}

func TestHandleGetGroceryPrompt(t *testing.T) {
	server := setupTestServer(t, nil)

	_, output, err := server.handleGetGroceryPrompt(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(output.Prompt, dashboard.GroceryPromptHeader) {
		t.Error("Expected prompt to start with the grocery header")
	}
	if !strings.Contains(output.Prompt, "Monday:\n  Wake-up Drink: Warm water + soaked almonds/walnuts\n") {
		t.Errorf("Expected Monday block in prompt:\n%s", output.Prompt)
	}
}

func TestHandleGetWorkoutPlan(t *testing.T) {
	server := setupTestServer(t, nil)
	ctx := context.Background()

	_, output, err := server.handleGetWorkoutPlan(ctx, &mcp.CallToolRequest{}, userInput{User: "Omkar"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	plan := output.(*dashboard.WorkoutView)
	if plan.User != models.UserOmkar {
		t.Errorf("User = %s", plan.User)
	}
	if len(plan.Routine) != 7 {
		t.Errorf("Expected 7 routine days, got %d", len(plan.Routine))
	}

	if _, _, err := server.handleGetWorkoutPlan(ctx, &mcp.CallToolRequest{}, userInput{User: "Bob"}); err == nil {
		t.Error("Expected error for unknown user")
	}
}

func TestHandleHomeResource(t *testing.T) {
	server := setupTestServer(t, nil)
	addEntry(t, server, "Prutha", "2024-03-09", 70)

	result, err := server.handleHomeResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}
	content := result.Contents[0]
	if content.URI != homeURI {
		t.Errorf("URI = %s, want %s", content.URI, homeURI)
	}

	var home dashboard.HomeView
	if err := json.Unmarshal([]byte(content.Text), &home); err != nil {
		t.Fatalf("Failed to parse resource JSON: %v", err)
	}
	if home.Empty {
		t.Error("Expected non-empty home view")
	}
}

func TestHandleTodayResource(t *testing.T) {
	server := setupTestServer(t, nil)
	addEntry(t, server, "Omkar", "", 90)
	addEntry(t, server, "Omkar", "", 89)
	addEntry(t, server, "Prutha", "2024-03-09", 70)

	result, err := server.handleTodayResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var data struct {
		Date    string                        `json:"date"`
		Entries map[string]*models.DailyEntry `json:"entries"`
		Missing []string                      `json:"missing"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatalf("Failed to parse resource JSON: %v", err)
	}

	if data.Date != "2024-03-10" {
		t.Errorf("date = %s", data.Date)
	}
	if e := data.Entries["Omkar"]; e == nil || e.Weight != 89 {
		t.Errorf("Expected latest Omkar entry (89 kg), got %+v", e)
	}
	if len(data.Missing) != 1 || data.Missing[0] != "Prutha" {
		t.Errorf("missing = %v, want [Prutha]", data.Missing)
	}
}

func TestHandleMealPlanResource(t *testing.T) {
	server := setupTestServer(t, nil)

	result, err := server.handleMealPlanResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s", result.Contents[0].MIMEType)
	}

	var data struct {
		Days []*models.MealPlanEntry `json:"days"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatalf("Failed to parse resource JSON: %v", err)
	}
	if len(data.Days) != 7 {
		t.Errorf("Expected 7 days, got %d", len(data.Days))
	}
}
