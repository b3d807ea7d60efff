// ABOUTME: Daily entry operations for SQLite storage.
// ABOUTME: Implements the append-only entry methods of the Repository interface.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/getfit/internal/models"
	log "github.com/sirupsen/logrus"
)

const entryColumns = `id, user, date, weight, workout_done, diet_done, slept_7h, drank_water, water_needed, created_at`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// CreateEntry stores a new daily entry and assigns its ID.
// An entry that already carries an ID (import, migration) keeps it.
func (d *DB) CreateEntry(e *models.DailyEntry) error {
	if err := insertEntry(d.db, e); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	log.WithFields(log.Fields{
		"id":   e.ID,
		"user": e.User,
		"date": e.DateString(),
	}).Debug("created entry")
	return nil
}

func insertEntry(ex execer, e *models.DailyEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	args := []interface{}{
		string(e.User),
		e.DateString(),
		e.Weight,
		boolToInt(e.WorkoutDone),
		boolToInt(e.DietDone),
		boolToInt(e.Slept7h),
		boolToInt(e.DrankWater),
		e.WaterNeeded,
		e.CreatedAt.UTC().Format(time.RFC3339),
	}

	query := `
		INSERT INTO daily_input (user, date, weight, workout_done, diet_done, slept_7h, drank_water, water_needed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if e.ID > 0 {
		query = `
			INSERT INTO daily_input (id, user, date, weight, workout_done, diet_done, slept_7h, drank_water, water_needed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		args = append([]interface{}{e.ID}, args...)
	}

	result, err := ex.Exec(query, args...)
	if err != nil {
		return err
	}

	if e.ID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		e.ID = id
	}
	return nil
}

// GetEntry retrieves an entry by ID.
func (d *DB) GetEntry(id int64) (*models.DailyEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM daily_input WHERE id = ?`
	e, err := scanEntry(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// ListEntries retrieves entries matching the filter, ordered by date then ID.
func (d *DB) ListEntries(filter EntryFilter) ([]*models.DailyEntry, error) {
	var where []string
	var args []interface{}

	if filter.User != nil {
		where = append(where, "user = ?")
		args = append(args, string(*filter.User))
	}
	if filter.Since != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.Since.Format(models.DateLayout))
	}
	if filter.Until != nil {
		where = append(where, "date <= ?")
		args = append(args, filter.Until.Format(models.DateLayout))
	}

	query := `SELECT ` + entryColumns + ` FROM daily_input`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if filter.Descending {
		query += " ORDER BY date DESC, id DESC"
	} else {
		query += " ORDER BY date ASC, id ASC"
	}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry scans a single row into a DailyEntry.
func scanEntry(row rowScanner) (*models.DailyEntry, error) {
	var e models.DailyEntry
	var user, date string
	var workout, diet, slept, water int
	var createdAt sql.NullString

	err := row.Scan(&e.ID, &user, &date, &e.Weight, &workout, &diet, &slept, &water, &e.WaterNeeded, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.User = models.User(user)
	e.Date, err = models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("scan entry %d: %w", e.ID, err)
	}
	e.WorkoutDone = workout != 0
	e.DietDone = diet != 0
	e.Slept7h = slept != 0
	e.DrankWater = water != 0
	if createdAt.Valid {
		e.CreatedAt = parseTimestamp(createdAt.String)
	}

	return &e, nil
}

// parseTimestamp accepts RFC3339 and the SQLite CURRENT_TIMESTAMP format.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
