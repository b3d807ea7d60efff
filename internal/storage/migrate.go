// ABOUTME: Data migration between getfit storage backends.
// ABOUTME: Copies daily entries (keeping their IDs) and the meal plan from source to destination.
package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Entries      int
	MealPlanDays int
}

// MigrateData copies all data from src to dst storage.
// Entry IDs are kept so last-write-wins ordering survives the move, which
// means the destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	entries, err := src.ListEntries(EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("list source entries: %w", err)
	}

	for _, e := range entries {
		if err := dst.CreateEntry(e); err != nil {
			return nil, fmt.Errorf("create entry %d: %w", e.ID, err)
		}
		summary.Entries++
	}

	plan, err := src.ListMealPlan()
	if err != nil {
		return nil, fmt.Errorf("list source meal plan: %w", err)
	}

	if len(plan) > 0 {
		if err := dst.ReseedMealPlan(plan, false); err != nil {
			return nil, fmt.Errorf("copy meal plan: %w", err)
		}
		summary.MealPlanDays = len(plan)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
