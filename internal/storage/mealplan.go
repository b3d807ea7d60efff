// ABOUTME: Meal plan operations for SQLite storage.
// ABOUTME: Handles ordered reads, in-place edits, and the startup reseed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/getfit/internal/models"
	log "github.com/sirupsen/logrus"
)

const mealPlanColumns = `day, wakeup_drink, breakfast, mid_morning_snack, lunch, snack, dinner`

// ListMealPlan returns the plan ordered Monday through Sunday.
func (d *DB) ListMealPlan() ([]*models.MealPlanEntry, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plan ORDER BY ` + weekdayOrderClause()
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list meal plan: %w", err)
	}
	defer rows.Close()

	var plan []*models.MealPlanEntry
	for rows.Next() {
		m, err := scanMealPlanEntry(rows)
		if err != nil {
			return nil, err
		}
		plan = append(plan, m)
	}
	return plan, rows.Err()
}

// GetMealPlanDay returns the plan for one day.
func (d *DB) GetMealPlanDay(day models.Weekday) (*models.MealPlanEntry, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plan WHERE day = ?`
	m, err := scanMealPlanEntry(d.db.QueryRow(query, string(day)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal plan %s: %w", day, ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

// UpdateMealPlanDay replaces all six slots of an existing day.
func (d *DB) UpdateMealPlanDay(m *models.MealPlanEntry) error {
	result, err := d.db.Exec(`
		UPDATE meal_plan SET
			wakeup_drink = ?,
			breakfast = ?,
			mid_morning_snack = ?,
			lunch = ?,
			snack = ?,
			dinner = ?
		WHERE day = ?
	`, m.WakeupDrink, m.Breakfast, m.MidMorningSnack, m.Lunch, m.Snack, m.Dinner, string(m.Day))
	if err != nil {
		return fmt.Errorf("update meal plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meal plan: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal plan %s: %w", m.Day, ErrNotFound)
	}
	return nil
}

// ReseedMealPlan restores the plan to seven weekday rows. With
// preserveUserEdits only missing days are inserted and existing rows are kept;
// otherwise the table is wiped and rows are written as given.
func (d *DB) ReseedMealPlan(rows []*models.MealPlanEntry, preserveUserEdits bool) error {
	if err := validatePlan(rows); err != nil {
		return fmt.Errorf("reseed meal plan: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("reseed meal plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := reseedMealPlanTx(tx, rows, preserveUserEdits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reseed meal plan: %w", err)
	}

	log.WithField("preserve_user_edits", preserveUserEdits).Debug("reseeded meal plan")
	return nil
}

// reseedMealPlanTx writes rows inside tx; rows must already be validated.
func reseedMealPlanTx(tx *sql.Tx, rows []*models.MealPlanEntry, preserveUserEdits bool) error {
	insert := `INSERT INTO meal_plan (` + mealPlanColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if preserveUserEdits {
		// Rows outside the seven weekdays would break the fixed cardinality.
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(models.Weekdays)), ", ")
		args := make([]interface{}, 0, len(models.Weekdays))
		for _, day := range models.Weekdays {
			args = append(args, string(day))
		}
		if _, err := tx.Exec(`DELETE FROM meal_plan WHERE day NOT IN (`+placeholders+`)`, args...); err != nil {
			return fmt.Errorf("reseed meal plan: %w", err)
		}
		insert = `INSERT OR IGNORE INTO meal_plan (` + mealPlanColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	} else {
		if _, err := tx.Exec(`DELETE FROM meal_plan`); err != nil {
			return fmt.Errorf("reseed meal plan: %w", err)
		}
	}

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("reseed meal plan: %w", err)
	}
	defer stmt.Close()

	for _, m := range rows {
		if _, err := stmt.Exec(string(m.Day), m.WakeupDrink, m.Breakfast, m.MidMorningSnack, m.Lunch, m.Snack, m.Dinner); err != nil {
			return fmt.Errorf("reseed meal plan %s: %w", m.Day, err)
		}
	}
	return nil
}

// weekdayOrderClause sorts day names Monday first.
func weekdayOrderClause() string {
	var sb strings.Builder
	sb.WriteString("CASE day")
	for i, day := range models.Weekdays {
		fmt.Fprintf(&sb, " WHEN '%s' THEN %d", day, i+1)
	}
	sb.WriteString(" END")
	return sb.String()
}

// scanMealPlanEntry scans a single row into a MealPlanEntry.
func scanMealPlanEntry(row rowScanner) (*models.MealPlanEntry, error) {
	var day string
	var fields [6]sql.NullString

	err := row.Scan(&day, &fields[0], &fields[1], &fields[2], &fields[3], &fields[4], &fields[5])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan meal plan: %w", err)
	}

	return &models.MealPlanEntry{
		Day:             models.Weekday(day),
		WakeupDrink:     fields[0].String,
		Breakfast:       fields[1].String,
		MidMorningSnack: fields[2].String,
		Lunch:           fields[3].String,
		Snack:           fields[4].String,
		Dinner:          fields[5].String,
	}, nil
}
