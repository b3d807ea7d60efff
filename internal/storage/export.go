// ABOUTME: Export and import functionality for getfit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/getfit/internal/models"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for getfit data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Entries    []*models.DailyEntry    `json:"entries" yaml:"entries"`
	MealPlan   []*models.MealPlanEntry `json:"meal_plan" yaml:"meal_plan"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return collectExportData(d)
}

// ImportData imports data from an export file in a single transaction.
func (d *DB) ImportData(data *ExportData) error {
	entries, err := prepareImport(data)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		if err := insertEntry(tx, e); err != nil {
			return fmt.Errorf("import entry: %w", err)
		}
	}
	if len(data.MealPlan) > 0 {
		if err := reseedMealPlanTx(tx, data.MealPlan, false); err != nil {
			return fmt.Errorf("import meal plan: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	log.WithFields(log.Fields{
		"entries":   len(entries),
		"meal_plan": len(data.MealPlan) > 0,
	}).Info("imported data")
	return nil
}

func collectExportData(r Repository) (*ExportData, error) {
	entries, err := r.ListEntries(EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	plan, err := r.ListMealPlan()
	if err != nil {
		return nil, fmt.Errorf("list meal plan: %w", err)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "getfit",
		Entries:    entries,
		MealPlan:   plan,
	}, nil
}

// prepareImport validates the whole export before anything is written and
// returns entry copies without IDs, in their original submission order.
func prepareImport(data *ExportData) ([]*models.DailyEntry, error) {
	sorted := make([]*models.DailyEntry, len(data.Entries))
	copy(sorted, data.Entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	entries := make([]*models.DailyEntry, 0, len(sorted))
	for _, e := range sorted {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("import entry %d: %w", e.ID, err)
		}
		imported := *e
		imported.ID = 0
		imported.Date = models.DateOf(e.Date)
		entries = append(entries, &imported)
	}

	if len(data.MealPlan) > 0 {
		if err := validatePlan(data.MealPlan); err != nil {
			return nil, fmt.Errorf("import meal plan: %w", err)
		}
	}
	return entries, nil
}

// importInto appends entries with fresh IDs and replaces the meal plan when
// one is present. Nothing is written unless the whole export validates.
func importInto(r Repository, data *ExportData) error {
	entries, err := prepareImport(data)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if err := r.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry: %w", err)
		}
	}

	if len(data.MealPlan) > 0 {
		if err := r.ReseedMealPlan(data.MealPlan, false); err != nil {
			return fmt.Errorf("import meal plan: %w", err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML with entries grouped by user.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Entries    map[string][]yamlEntry  `yaml:"entries"`
		MealPlan   []*models.MealPlanEntry `yaml:"meal_plan"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Entries:    make(map[string][]yamlEntry),
		MealPlan:   data.MealPlan,
	}

	for _, e := range data.Entries {
		u := string(e.User)
		yamlData.Entries[u] = append(yamlData.Entries[u], yamlEntry{
			ID:          e.ID,
			Date:        e.DateString(),
			Weight:      e.Weight,
			WorkoutDone: e.WorkoutDone,
			DietDone:    e.DietDone,
			Slept7h:     e.Slept7h,
			DrankWater:  e.DrankWater,
			WaterNeeded: e.WaterNeeded,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlEntry struct {
	ID          int64   `yaml:"id"`
	Date        string  `yaml:"date"`
	Weight      float64 `yaml:"weight"`
	WorkoutDone bool    `yaml:"workout_done"`
	DietDone    bool    `yaml:"diet_done"`
	Slept7h     bool    `yaml:"slept_7h"`
	DrankWater  bool    `yaml:"drank_water"`
	WaterNeeded float64 `yaml:"water_needed"`
}

// ExportMarkdown exports entries as one table per user followed by the meal plan.
// user and since are optional filters.
func ExportMarkdown(r Repository, user *models.User, since *time.Time) (string, error) {
	entries, err := r.ListEntries(EntryFilter{User: user, Since: since})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# GetFit Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	grouped := make(map[models.User][]*models.DailyEntry)
	for _, e := range entries {
		grouped[e.User] = append(grouped[e.User], e)
	}

	for _, u := range models.AllUsers {
		if len(grouped[u]) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", u))
		sb.WriteString("| Date | Weight | Workout | Diet | Slept 7h | Drank Water | Water Needed |\n")
		sb.WriteString("|------|--------|---------|------|----------|-------------|--------------|\n")
		for _, e := range grouped[u] {
			sb.WriteString(fmt.Sprintf("| %s | %.1f kg | %s | %s | %s | %s | %.2f L |\n",
				e.DateString(), e.Weight,
				yesNo(e.WorkoutDone), yesNo(e.DietDone),
				yesNo(e.Slept7h), yesNo(e.DrankWater),
				e.WaterNeeded))
		}
		sb.WriteString("\n")
	}

	if user == nil {
		plan, err := r.ListMealPlan()
		if err == nil && len(plan) > 0 {
			sb.WriteString("## Meal Plan\n\n")
			sb.WriteString("| Day | " + strings.Join(mealFieldLabels(), " | ") + " |\n")
			sb.WriteString("|-----" + strings.Repeat("|-----", len(models.MealFields)) + "|\n")
			for _, m := range plan {
				cells := []string{string(m.Day)}
				for _, f := range models.MealFields {
					cells = append(cells, m.Get(f))
				}
				sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
			}
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&exportData)
}
