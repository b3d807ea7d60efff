// ABOUTME: Core MarkdownStore struct and helpers for file-based getfit storage.
// ABOUTME: One YAML-frontmatter file per daily entry plus a single meal_plan.md.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/getfit/internal/models"
	log "github.com/sirupsen/logrus"
)

// MarkdownStore provides file-based storage for getfit data using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	log.WithField("dir", dataDir).Debug("opened markdown store")
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

// entriesDir returns the path to the entries directory.
func (s *MarkdownStore) entriesDir() string {
	return filepath.Join(s.dataDir, "entries")
}

// mealPlanPath returns the path to the meal plan file.
func (s *MarkdownStore) mealPlanPath() string {
	return filepath.Join(s.dataDir, "meal_plan.md")
}

// entryFilePath returns the path for an entry file.
// Format: entries/YYYY/MM/YYYY-MM-DD-<user>-<id>.md.
func (s *MarkdownStore) entryFilePath(e *models.DailyEntry) string {
	return filepath.Join(s.entriesDir(), e.Date.Format("2006"), e.Date.Format("01"),
		fmt.Sprintf("%s-%s-%d.md", e.DateString(), strings.ToLower(string(e.User)), e.ID))
}

// entryFrontmatter holds the YAML frontmatter of an entry file.
type entryFrontmatter struct {
	ID          int64   `yaml:"id"`
	User        string  `yaml:"user"`
	Date        string  `yaml:"date"`
	Weight      float64 `yaml:"weight"`
	WorkoutDone bool    `yaml:"workout_done"`
	DietDone    bool    `yaml:"diet_done"`
	Slept7h     bool    `yaml:"slept_7h"`
	DrankWater  bool    `yaml:"drank_water"`
	WaterNeeded float64 `yaml:"water_needed"`
	CreatedAt   string  `yaml:"created_at"`
}

// mealPlanFrontmatter holds the YAML frontmatter of meal_plan.md.
type mealPlanFrontmatter struct {
	Days []*models.MealPlanEntry `yaml:"days"`
}

// entryToFrontmatter converts a models.DailyEntry to frontmatter.
func entryToFrontmatter(e *models.DailyEntry) entryFrontmatter {
	return entryFrontmatter{
		ID:          e.ID,
		User:        string(e.User),
		Date:        e.DateString(),
		Weight:      e.Weight,
		WorkoutDone: e.WorkoutDone,
		DietDone:    e.DietDone,
		Slept7h:     e.Slept7h,
		DrankWater:  e.DrankWater,
		WaterNeeded: e.WaterNeeded,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// entryFromFrontmatter converts frontmatter to a models.DailyEntry.
func entryFromFrontmatter(fm *entryFrontmatter) (*models.DailyEntry, error) {
	date, err := models.ParseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("parse entry %d: %w", fm.ID, err)
	}
	return &models.DailyEntry{
		ID:          fm.ID,
		User:        models.User(fm.User),
		Date:        date,
		Weight:      fm.Weight,
		WorkoutDone: fm.WorkoutDone,
		DietDone:    fm.DietDone,
		Slept7h:     fm.Slept7h,
		DrankWater:  fm.DrankWater,
		WaterNeeded: fm.WaterNeeded,
		CreatedAt:   parseTimestamp(fm.CreatedAt),
	}, nil
}

// readEntryFile reads an entry from a markdown file.
func readEntryFile(path string) (*models.DailyEntry, error) {
	var fm entryFrontmatter
	if _, err := readFrontmatterFile(path, &fm); err != nil {
		return nil, err
	}
	return entryFromFrontmatter(&fm)
}

// writeEntryFile writes an entry to a markdown file. The body is a short
// human-readable summary; the frontmatter is authoritative.
func (s *MarkdownStore) writeEntryFile(e *models.DailyEntry) error {
	fm := entryToFrontmatter(e)
	body := fmt.Sprintf("\n# %s %s\n\nWeight: %.1f kg, water target %.2f L\n",
		e.User, e.DateString(), e.Weight, e.WaterNeeded)

	content, err := renderFrontmatter(&fm, body)
	if err != nil {
		return fmt.Errorf("render entry file: %w", err)
	}
	return atomicWrite(s.entryFilePath(e), []byte(content))
}

// walkEntryFiles walks all entry markdown files and calls fn for each.
func (s *MarkdownStore) walkEntryFiles(fn func(path string, e *models.DailyEntry) error) error {
	dir := s.entriesDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		e, err := readEntryFile(path)
		if err != nil {
			return fmt.Errorf("read entry file %s: %w", path, err)
		}
		return fn(path, e)
	})
}

// maxEntryID returns the highest stored entry ID, or 0.
func (s *MarkdownStore) maxEntryID() (int64, error) {
	var maxID int64
	err := s.walkEntryFiles(func(_ string, e *models.DailyEntry) error {
		if e.ID > maxID {
			maxID = e.ID
		}
		return nil
	})
	return maxID, err
}

// --- Repository interface methods ---

// CreateEntry stores a new entry as a markdown file. IDs are assigned as
// max+1 so they stay monotonic like the SQLite backend.
func (s *MarkdownStore) CreateEntry(e *models.DailyEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	if e.ID == 0 {
		maxID, err := s.maxEntryID()
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		e.ID = maxID + 1
	} else if existing, err := s.GetEntry(e.ID); err == nil {
		return fmt.Errorf("create entry: id %d already used by %s %s", e.ID, existing.User, existing.DateString())
	}

	if err := s.writeEntryFile(e); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	log.WithFields(log.Fields{
		"id":   e.ID,
		"user": e.User,
		"date": e.DateString(),
	}).Debug("created entry")
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *MarkdownStore) GetEntry(id int64) (*models.DailyEntry, error) {
	var found *models.DailyEntry
	err := s.walkEntryFiles(func(_ string, e *models.DailyEntry) error {
		if e.ID == id {
			found = e
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return found, nil
}

// ListEntries retrieves entries matching the filter, ordered by date then ID.
func (s *MarkdownStore) ListEntries(filter EntryFilter) ([]*models.DailyEntry, error) {
	var entries []*models.DailyEntry

	err := s.walkEntryFiles(func(_ string, e *models.DailyEntry) error {
		if filter.matches(e) {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if filter.Descending {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

// readMealPlan loads meal_plan.md. A missing file is an empty plan.
func (s *MarkdownStore) readMealPlan() ([]*models.MealPlanEntry, error) {
	var fm mealPlanFrontmatter
	if _, err := readFrontmatterFile(s.mealPlanPath(), &fm); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read meal plan: %w", err)
	}
	return fm.Days, nil
}

// writeMealPlan stores rows in weekday order along with a readable table.
func (s *MarkdownStore) writeMealPlan(rows []*models.MealPlanEntry) error {
	sortMealPlan(rows)

	var body strings.Builder
	body.WriteString("\n# Weekly Meal Plan\n\n")
	body.WriteString("| Day | " + strings.Join(mealFieldLabels(), " | ") + " |\n")
	body.WriteString("|-----" + strings.Repeat("|-----", len(models.MealFields)) + "|\n")
	for _, m := range rows {
		cells := []string{string(m.Day)}
		for _, f := range models.MealFields {
			cells = append(cells, m.Get(f))
		}
		body.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	content, err := renderFrontmatter(&mealPlanFrontmatter{Days: rows}, body.String())
	if err != nil {
		return fmt.Errorf("render meal plan: %w", err)
	}
	return atomicWrite(s.mealPlanPath(), []byte(content))
}

// ListMealPlan returns the plan ordered Monday through Sunday.
func (s *MarkdownStore) ListMealPlan() ([]*models.MealPlanEntry, error) {
	rows, err := s.readMealPlan()
	if err != nil {
		return nil, err
	}
	sortMealPlan(rows)
	return rows, nil
}

// GetMealPlanDay returns the plan for one day.
func (s *MarkdownStore) GetMealPlanDay(day models.Weekday) (*models.MealPlanEntry, error) {
	rows, err := s.readMealPlan()
	if err != nil {
		return nil, err
	}
	for _, m := range rows {
		if m.Day == day {
			return m, nil
		}
	}
	return nil, fmt.Errorf("meal plan %s: %w", day, ErrNotFound)
}

// UpdateMealPlanDay replaces all six slots of an existing day.
func (s *MarkdownStore) UpdateMealPlanDay(m *models.MealPlanEntry) error {
	rows, err := s.readMealPlan()
	if err != nil {
		return err
	}
	for i, existing := range rows {
		if existing.Day == m.Day {
			updated := *m
			rows[i] = &updated
			return s.writeMealPlan(rows)
		}
	}
	return fmt.Errorf("meal plan %s: %w", m.Day, ErrNotFound)
}

// ReseedMealPlan restores the plan to seven weekday rows. With
// preserveUserEdits only missing days are added; otherwise rows replace the file.
func (s *MarkdownStore) ReseedMealPlan(rows []*models.MealPlanEntry, preserveUserEdits bool) error {
	if err := validatePlan(rows); err != nil {
		return fmt.Errorf("reseed meal plan: %w", err)
	}

	byDay := make(map[models.Weekday]*models.MealPlanEntry, len(rows))
	if preserveUserEdits {
		existing, err := s.readMealPlan()
		if err != nil {
			return fmt.Errorf("reseed meal plan: %w", err)
		}
		for _, m := range existing {
			if _, dup := byDay[m.Day]; !dup && m.Day.Index() >= 0 {
				byDay[m.Day] = m
			}
		}
	}
	for _, m := range rows {
		if _, ok := byDay[m.Day]; !ok {
			seeded := *m
			byDay[m.Day] = &seeded
		}
	}

	plan := make([]*models.MealPlanEntry, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		plan = append(plan, byDay[day])
	}
	if err := s.writeMealPlan(plan); err != nil {
		return fmt.Errorf("reseed meal plan: %w", err)
	}

	log.WithField("preserve_user_edits", preserveUserEdits).Debug("reseeded meal plan")
	return nil
}

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return collectExportData(s)
}

// ImportData imports data from an export format.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return importInto(s, data)
}

// sortMealPlan orders rows Monday first.
func sortMealPlan(rows []*models.MealPlanEntry) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Day.Index() < rows[j].Day.Index()
	})
}

func mealFieldLabels() []string {
	labels := make([]string, 0, len(models.MealFields))
	for _, f := range models.MealFields {
		labels = append(labels, models.MealFieldLabels[f])
	}
	return labels
}
