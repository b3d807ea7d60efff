// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the daily_input and meal_plan tables.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_input (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user TEXT NOT NULL,
		date TEXT NOT NULL,
		weight REAL NOT NULL,
		workout_done INTEGER NOT NULL DEFAULT 0,
		diet_done INTEGER NOT NULL DEFAULT 0,
		slept_7h INTEGER NOT NULL DEFAULT 0,
		drank_water INTEGER NOT NULL DEFAULT 0,
		water_needed REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS meal_plan (
		day TEXT PRIMARY KEY,
		wakeup_drink TEXT,
		breakfast TEXT,
		mid_morning_snack TEXT,
		lunch TEXT,
		snack TEXT,
		dinner TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_daily_input_date ON daily_input(date);
	CREATE INDEX IF NOT EXISTS idx_daily_input_user_date ON daily_input(user, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
