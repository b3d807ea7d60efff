// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-markdown, markdown-to-sqlite, and empty sources.
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/getfit/internal/models"
)

func TestMigrateDataSQLiteToMarkdown(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)

	monday, err := src.GetMealPlanDay(models.Monday)
	if err != nil {
		t.Fatalf("GetMealPlanDay failed: %v", err)
	}
	monday.Dinner = "Khichdi"
	if err := src.UpdateMealPlanDay(monday); err != nil {
		t.Fatalf("UpdateMealPlanDay failed: %v", err)
	}

	dst := setupTestMarkdownStore(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Entries != 3 {
		t.Errorf("Expected 3 migrated entries, got %d", summary.Entries)
	}
	if summary.MealPlanDays != 7 {
		t.Errorf("Expected 7 migrated meal plan days, got %d", summary.MealPlanDays)
	}

	srcEntries, _ := src.ListEntries(EntryFilter{})
	dstEntries, err := dst.ListEntries(EntryFilter{})
	if err != nil {
		t.Fatalf("ListEntries from dst failed: %v", err)
	}
	if len(dstEntries) != len(srcEntries) {
		t.Fatalf("Expected %d entries in dst, got %d", len(srcEntries), len(dstEntries))
	}
	for i := range srcEntries {
		s, d := srcEntries[i], dstEntries[i]
		if s.ID != d.ID || s.User != d.User || s.DateString() != d.DateString() || s.Weight != d.Weight {
			t.Errorf("Entry %d mismatch: src %+v, dst %+v", i, s, d)
		}
		if s.WaterNeeded != d.WaterNeeded {
			t.Errorf("Entry %d water mismatch: %v vs %v", i, s.WaterNeeded, d.WaterNeeded)
		}
	}

	got, err := dst.GetMealPlanDay(models.Monday)
	if err != nil {
		t.Fatalf("GetMealPlanDay from dst failed: %v", err)
	}
	if got.Dinner != "Khichdi" {
		t.Errorf("Expected edited dinner to migrate, got %q", got.Dinner)
	}
}

func TestMigrateDataMarkdownToSQLite(t *testing.T) {
	src := setupTestMarkdownStore(t)
	seedExportData(t, src)

	dst := setupTestDB(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Entries != 3 {
		t.Errorf("Expected 3 migrated entries, got %d", summary.Entries)
	}

	// New entries continue after the migrated IDs.
	e := newEntry(models.UserOmkar, "2024-01-04", 87)
	if err := dst.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if e.ID != 4 {
		t.Errorf("Expected next ID 4, got %d", e.ID)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestMarkdownStore(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Entries != 0 || summary.MealPlanDays != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	// Empty directory
	emptyDir, err := os.MkdirTemp("", "getfit-empty-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(emptyDir)

	nonEmpty, err := IsDirNonEmpty(emptyDir)
	if err != nil {
		t.Fatalf("IsDirNonEmpty failed: %v", err)
	}
	if nonEmpty {
		t.Error("Expected empty directory to return false")
	}

	// Non-empty directory
	if err := os.WriteFile(filepath.Join(emptyDir, "test.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	nonEmpty, err = IsDirNonEmpty(emptyDir)
	if err != nil {
		t.Fatalf("IsDirNonEmpty failed: %v", err)
	}
	if !nonEmpty {
		t.Error("Expected non-empty directory to return true")
	}

	// Non-existent directory
	nonEmpty, err = IsDirNonEmpty("/nonexistent/path")
	if err != nil {
		t.Fatalf("IsDirNonEmpty for nonexistent should not error: %v", err)
	}
	if nonEmpty {
		t.Error("Expected non-existent directory to return false")
	}
}
