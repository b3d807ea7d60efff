// ABOUTME: DailyEntry model and the fixed User enum for the two tracked people.
// ABOUTME: Validates submissions and freezes the water target at creation time.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/getfit/internal/calc"
)

// User identifies one of the tracked people.
type User string

const (
	UserOmkar  User = "Omkar"
	UserPrutha User = "Prutha"
)

// AllUsers lists the tracked users in display order.
var AllUsers = []User{UserOmkar, UserPrutha}

// Weight bounds accepted on submission, in kilograms.
const (
	MinWeight = 30.0
	MaxWeight = 200.0
)

// DateLayout is the on-disk and CLI date format.
const DateLayout = "2006-01-02"

var (
	// ErrUnknownUser is returned for names outside AllUsers.
	ErrUnknownUser = errors.New("unknown user")
	// ErrWeightOutOfRange is returned when a weight falls outside [MinWeight, MaxWeight].
	ErrWeightOutOfRange = errors.New("weight out of range")
)

// IsValidUser checks if a string names a tracked user.
func IsValidUser(s string) bool {
	for _, u := range AllUsers {
		if string(u) == s {
			return true
		}
	}
	return false
}

// ParseUser resolves a user name case-insensitively.
func ParseUser(s string) (User, error) {
	for _, u := range AllUsers {
		if strings.EqualFold(string(u), strings.TrimSpace(s)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownUser, s)
}

// ValidateWeight rejects weights outside the accepted submission range.
// NaN fails every comparison, so the range is checked inclusively.
func ValidateWeight(weight float64) error {
	if !(weight >= MinWeight && weight <= MaxWeight) {
		return fmt.Errorf("%w: %.1f (must be between %.0f and %.0f kg)", ErrWeightOutOfRange, weight, MinWeight, MaxWeight)
	}
	return nil
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DailyEntry is one submitted daily record of a user's metrics.
type DailyEntry struct {
	ID          int64     `json:"id"`
	User        User      `json:"user"`
	Date        time.Time `json:"date"`
	Weight      float64   `json:"weight"`
	WorkoutDone bool      `json:"workout_done"`
	DietDone    bool      `json:"diet_done"`
	Slept7h     bool      `json:"slept_7h"`
	DrankWater  bool      `json:"drank_water"`
	WaterNeeded float64   `json:"water_needed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDailyEntry creates an entry for today with the water target computed
// from weight. The target is stored with the entry and never recomputed.
func NewDailyEntry(user User, weight float64) *DailyEntry {
	now := time.Now()
	return &DailyEntry{
		User:        user,
		Date:        DateOf(now),
		Weight:      weight,
		WaterNeeded: calc.WaterTarget(weight),
		CreatedAt:   now,
	}
}

// WithDate sets the calendar date of the entry.
func (e *DailyEntry) WithDate(d time.Time) *DailyEntry {
	e.Date = DateOf(d)
	return e
}

// WithFlags sets the four adherence checkboxes.
func (e *DailyEntry) WithFlags(workout, diet, slept, water bool) *DailyEntry {
	e.WorkoutDone = workout
	e.DietDone = diet
	e.Slept7h = slept
	e.DrankWater = water
	return e
}

// Validate checks the user and the weight range.
func (e *DailyEntry) Validate() error {
	if !IsValidUser(string(e.User)) {
		return fmt.Errorf("%w: %s", ErrUnknownUser, e.User)
	}
	return ValidateWeight(e.Weight)
}

// DateString formats the entry date as YYYY-MM-DD.
func (e *DailyEntry) DateString() string {
	return e.Date.Format(DateLayout)
}
