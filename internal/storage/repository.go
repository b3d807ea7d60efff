// ABOUTME: Repository interface for daily entries and the weekly meal plan.
// ABOUTME: Defines the store contract shared by the SQLite and Markdown backends.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/getfit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for getfit data.
// Entries are append-only: there is no update or delete.
type Repository interface {
	// Daily entry operations
	CreateEntry(e *models.DailyEntry) error
	GetEntry(id int64) (*models.DailyEntry, error)
	ListEntries(filter EntryFilter) ([]*models.DailyEntry, error)

	// Meal plan operations
	ListMealPlan() ([]*models.MealPlanEntry, error)
	GetMealPlanDay(day models.Weekday) (*models.MealPlanEntry, error)
	UpdateMealPlanDay(m *models.MealPlanEntry) error
	ReseedMealPlan(rows []*models.MealPlanEntry, preserveUserEdits bool) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// EntryFilter narrows ListEntries. Zero value lists everything oldest first,
// ordered by date and then by submission (ID).
type EntryFilter struct {
	User       *models.User
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Descending bool
}

// ForUser returns a filter for a single user.
func ForUser(u models.User) EntryFilter {
	return EntryFilter{User: &u}
}

// matches reports whether e satisfies the user and date bounds of f.
func (f EntryFilter) matches(e *models.DailyEntry) bool {
	if f.User != nil && e.User != *f.User {
		return false
	}
	if f.Since != nil && e.Date.Before(models.DateOf(*f.Since)) {
		return false
	}
	if f.Until != nil && e.Date.After(models.DateOf(*f.Until)) {
		return false
	}
	return true
}

// validatePlan checks that rows cover each weekday exactly once.
func validatePlan(rows []*models.MealPlanEntry) error {
	if len(rows) != len(models.Weekdays) {
		return fmt.Errorf("meal plan must have %d days, got %d", len(models.Weekdays), len(rows))
	}
	seen := make(map[models.Weekday]bool, len(rows))
	for _, r := range rows {
		if r.Day.Index() < 0 {
			return fmt.Errorf("%w: %s", models.ErrUnknownDay, r.Day)
		}
		if seen[r.Day] {
			return fmt.Errorf("duplicate meal plan day: %s", r.Day)
		}
		seen[r.Day] = true
	}
	return nil
}
