// ABOUTME: XLSX workbook export of daily entries and the meal plan.
// ABOUTME: One sheet per user plus a "Meal Plan" sheet, built with excelize.
package storage

import (
	"fmt"

	"github.com/harperreed/getfit/internal/models"
	"github.com/xuri/excelize/v2"
)

const mealPlanSheet = "Meal Plan"

var entryHeaders = []string{
	"ID", "Date", "Weight (kg)", "Workout", "Diet", "Slept 7h", "Drank Water", "Water Needed (L)",
}

// ExportXLSX renders all data as an XLSX workbook.
func ExportXLSX(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	grouped := make(map[models.User][]*models.DailyEntry)
	for _, e := range data.Entries {
		grouped[e.User] = append(grouped[e.User], e)
	}

	for i, u := range models.AllUsers {
		sheet := string(u)
		index, err := f.NewSheet(sheet)
		if err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}

		if err := writeHeaderRow(f, sheet, entryHeaders, headerStyle); err != nil {
			return nil, err
		}
		for row, e := range grouped[u] {
			values := []interface{}{
				e.ID, e.DateString(), e.Weight,
				yesNo(e.WorkoutDone), yesNo(e.DietDone), yesNo(e.Slept7h), yesNo(e.DrankWater),
				e.WaterNeeded,
			}
			if err := writeRow(f, sheet, row+2, values); err != nil {
				return nil, err
			}
		}
		_ = f.SetColWidth(sheet, "A", "A", 8)
		_ = f.SetColWidth(sheet, "B", "H", 16)
	}

	if _, err := f.NewSheet(mealPlanSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", mealPlanSheet, err)
	}
	if err := writeHeaderRow(f, mealPlanSheet, append([]string{"Day"}, mealFieldLabels()...), headerStyle); err != nil {
		return nil, err
	}
	for row, m := range data.MealPlan {
		values := []interface{}{string(m.Day)}
		for _, field := range models.MealFields {
			values = append(values, m.Get(field))
		}
		if err := writeRow(f, mealPlanSheet, row+2, values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(mealPlanSheet, "A", "A", 12)
	_ = f.SetColWidth(mealPlanSheet, "B", "G", 40)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header %s!%s: %w", sheet, cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("style header %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
