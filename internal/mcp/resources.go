// ABOUTME: MCP resource implementations for getfit.
// ABOUTME: Provides getfit://home, getfit://today, and getfit://meal-plan resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/getfit/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	homeURI     = "getfit://home"
	todayURI    = "getfit://today"
	mealPlanURI = "getfit://meal-plan"
)

func (s *Server) registerResources() {
	// getfit://home - progress overview for both users
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         homeURI,
		Name:        "Progress Overview",
		Description: "Habit summary, goal progress, challenge countdown and charts for both users",
		MIMEType:    "application/json",
	}, s.handleHomeResource)

	// getfit://today - effective entry of each user for today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Entries",
		Description: "The latest entry of each user for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// getfit://meal-plan - weekly meal plan
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         mealPlanURI,
		Name:        "Weekly Meal Plan",
		Description: "Meals for every weekday, Monday through Sunday",
		MIMEType:    "application/json",
	}, s.handleMealPlanResource)
}

// Resource handlers

func (s *Server) handleHomeResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	home, err := s.svc.Home()
	if err != nil {
		return nil, fmt.Errorf("failed to build home view: %w", err)
	}
	return jsonResource(homeURI, home)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today, err := s.svc.TodayEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to list today's entries: %w", err)
	}

	entries := make(map[string]interface{}, len(today))
	var missing []string
	for _, u := range models.AllUsers {
		if e, ok := today[u]; ok {
			entries[string(u)] = e
		} else {
			missing = append(missing, string(u))
		}
	}

	result := map[string]interface{}{
		"date":    s.svc.Today().Format(models.DateLayout),
		"entries": entries,
		"missing": missing,
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleMealPlanResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	plan, err := s.svc.MealPlan()
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return jsonResource(mealPlanURI, map[string]interface{}{"days": plan})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
