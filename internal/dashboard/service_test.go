// ABOUTME: Tests for the dashboard service over a real SQLite store.
// ABOUTME: Covers submission, home view, meal plan editing, grocery prompt and workout plans.
package dashboard

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/getfit/internal/config"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg *config.Config, today string) *Service {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "getfit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if cfg == nil {
		cfg = &config.Config{}
	}
	require.NoError(t, db.ReseedMealPlan(models.DefaultMealPlan(), cfg.GetPreserveUserEdits()))

	d, err := models.ParseDate(today)
	require.NoError(t, err)
	now := d.Add(9 * time.Hour)
	return NewService(db, cfg, WithClock(func() time.Time { return now }))
}

func submit(t *testing.T, s *Service, user, date string, weight float64, flags ...bool) *models.DailyEntry {
	t.Helper()
	in := SubmissionInput{User: user, Weight: weight, Date: date}
	if len(flags) == 4 {
		in.WorkoutDone, in.DietDone, in.Slept7h, in.DrankWater = flags[0], flags[1], flags[2], flags[3]
	}
	e, err := s.Submit(in)
	require.NoError(t, err)
	return e
}

func TestSubmit(t *testing.T) {
	s := newTestService(t, nil, "2024-01-05")

	e, err := s.Submit(SubmissionInput{User: "omkar", Weight: 80, WorkoutDone: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, models.UserOmkar, e.User)
	assert.Equal(t, "2024-01-05", e.DateString())
	assert.Equal(t, 2.8, e.WaterNeeded)
	assert.True(t, e.WorkoutDone)

	stored, err := s.repo.GetEntry(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.8, stored.WaterNeeded)
}

func TestSubmitValidation(t *testing.T) {
	s := newTestService(t, nil, "2024-01-05")

	_, err := s.Submit(SubmissionInput{User: "Mallory", Weight: 80})
	assert.ErrorIs(t, err, models.ErrUnknownUser)

	_, err = s.Submit(SubmissionInput{User: "Omkar", Weight: 25})
	assert.ErrorIs(t, err, models.ErrWeightOutOfRange)

	_, err = s.Submit(SubmissionInput{User: "Omkar", Weight: 201})
	assert.ErrorIs(t, err, models.ErrWeightOutOfRange)

	_, err = s.Submit(SubmissionInput{User: "Omkar", Weight: math.NaN()})
	assert.ErrorIs(t, err, models.ErrWeightOutOfRange)

	_, err = s.Submit(SubmissionInput{User: "Omkar", Weight: 80, Date: "05/01/2024"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	entries, err := s.Entries("", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmissionView(t *testing.T) {
	s := newTestService(t, nil, "2024-01-05")

	pairs, err := s.SubmissionView("Omkar", 80)
	require.NoError(t, err)
	assert.Contains(t, pairs, Pair{"Height", "70 inches (177.8 cm)"})
	assert.Contains(t, pairs, Pair{"Recommended water intake", "2.80 liters"})
	assert.Contains(t, pairs, Pair{"BMI", "25.31 (Overweight)"})

	_, err = s.SubmissionView("nobody", 80)
	assert.ErrorIs(t, err, models.ErrUnknownUser)

	_, err = s.SubmissionView("Omkar", math.NaN())
	assert.ErrorIs(t, err, models.ErrWeightOutOfRange)
}

func TestHomeEmpty(t *testing.T) {
	s := newTestService(t, nil, "2024-01-05")

	view, err := s.Home()
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, NoDataMessage, view.Message)
	assert.Empty(t, view.Users)
}

func TestHome(t *testing.T) {
	s := newTestService(t, nil, "2024-01-03")
	submit(t, s, "Omkar", "2024-01-01", 90, true, true, false, true)
	submit(t, s, "Omkar", "2024-01-03", 88, false, true, true, false)

	view, err := s.Home()
	require.NoError(t, err)
	require.False(t, view.Empty)
	assert.Equal(t, 3, view.TotalDays)
	assert.Contains(t, view.Countdown, Pair{"Days Remaining", "88"})
	require.Len(t, view.Users, 2)

	omkar := view.Users[0]
	assert.Equal(t, models.UserOmkar, omkar.User)
	assert.False(t, omkar.NoData)
	assert.Contains(t, omkar.Summary, Pair{"Workouts Done", "1 / 3"})
	assert.Contains(t, omkar.Summary, Pair{"Diet Followed", "2 / 3"})
	assert.Contains(t, omkar.Summary, Pair{"Days Recorded", "2"})
	assert.Contains(t, omkar.Goal, Pair{"Latest Weight", "88.0 kg"})
	assert.Contains(t, omkar.Goal, Pair{"Goal Progress", "n/a (no target weight configured)"})

	require.Len(t, omkar.Charts, 5)
	weight := omkar.Charts[0].Series[0].Points
	require.Len(t, weight, 3)
	assert.Equal(t, 90.0, weight[1].Value)
	water := omkar.Charts[3]
	assert.Equal(t, "Water Intake", water.Title)
	require.Len(t, water.Series, 2)
	assert.Equal(t, "Water Needed (L)", water.Series[1].Name)

	prutha := view.Users[1]
	assert.True(t, prutha.NoData)
	assert.Empty(t, prutha.Charts)
}

func TestHomeGoalProgress(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[models.User]models.UserProfile{
			models.UserPrutha: {StartWeight: 90, TargetWeight: 80},
		},
	}
	s := newTestService(t, cfg, "2024-02-01")
	submit(t, s, "Prutha", "2024-02-01", 85)

	view, err := s.Home()
	require.NoError(t, err)

	prutha := view.Users[1]
	assert.Contains(t, prutha.Goal, Pair{"Target Weight", "80.0 kg"})
	assert.Contains(t, prutha.Goal, Pair{"Goal Progress", "50.0%"})
}

func TestHomeGoalProgressFromFirstWeight(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[models.User]models.UserProfile{
			models.UserOmkar: {TargetWeight: 80},
		},
	}
	s := newTestService(t, cfg, "2024-02-02")
	submit(t, s, "Omkar", "2024-02-01", 90)
	submit(t, s, "Omkar", "2024-02-02", 85)
	submit(t, s, "Prutha", "2024-02-02", 70)

	view, err := s.Home()
	require.NoError(t, err)

	omkar := view.Users[0]
	assert.Contains(t, omkar.Goal, Pair{"Goal Progress", "50.0%"})
	assert.Contains(t, view.Users[1].Goal, Pair{"Goal Progress", "n/a (no target weight configured)"})
}

func TestHomeUsesLatestSubmissionPerDay(t *testing.T) {
	s := newTestService(t, nil, "2024-01-01")
	submit(t, s, "Omkar", "2024-01-01", 91, true, true, true, true)
	submit(t, s, "Omkar", "2024-01-01", 90, false, false, false, false)

	view, err := s.Home()
	require.NoError(t, err)

	omkar := view.Users[0]
	assert.Contains(t, omkar.Summary, Pair{"Workouts Done", "0 / 1"})
	assert.Contains(t, omkar.Goal, Pair{"Latest Weight", "90.0 kg"})
}

func TestProgress(t *testing.T) {
	s := newTestService(t, nil, "2024-01-03")
	submit(t, s, "Omkar", "2024-01-01", 90)
	submit(t, s, "Omkar", "2024-01-03", 88)

	series, err := s.Progress("Omkar")
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, "2024-01-02", series[1].Date.Format(models.DateLayout))
	assert.Equal(t, 90.0, series[1].Weight)
	assert.False(t, series[1].Observed)

	series, err = s.Progress("Prutha")
	require.NoError(t, err)
	assert.Nil(t, series)
}

func TestEntriesAndTodayEntries(t *testing.T) {
	s := newTestService(t, nil, "2024-01-02")
	submit(t, s, "Omkar", "2024-01-01", 90)
	submit(t, s, "Omkar", "2024-01-02", 89.5)
	latest := submit(t, s, "Omkar", "2024-01-02", 89.2)
	submit(t, s, "Prutha", "2024-01-01", 70)

	entries, err := s.Entries("Omkar", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, latest.ID, entries[0].ID)

	today, err := s.TodayEntries()
	require.NoError(t, err)
	require.Contains(t, today, models.UserOmkar)
	assert.Equal(t, 89.2, today[models.UserOmkar].Weight)
	assert.NotContains(t, today, models.UserPrutha)
}

func TestGroceryPrompt(t *testing.T) {
	s := newTestService(t, nil, "2024-01-01")

	prompt, err := s.GroceryPrompt()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, GroceryPromptHeader))
	monday := "Monday:\n" +
		"  Wake-up Drink: Warm water + soaked almonds/walnuts\n" +
		"  Breakfast: 2 eggs + 1 toast + sautéed spinach\n" +
		"  Mid-Morning Snack: Apple + green tea\n" +
		"  Lunch: Brown rice + grilled chicken + veg curry + salad\n" +
		"  Snack: Buttermilk + roasted chana\n" +
		"  Dinner: 2 rotis + chicken curry + sautéed veg\n\n"
	assert.True(t, strings.HasPrefix(strings.TrimPrefix(prompt, GroceryPromptHeader), monday))
	assert.True(t, strings.HasSuffix(prompt, "  Dinner: Brown rice + grilled chicken + soup\n\n"))
	assert.Equal(t, 7, strings.Count(prompt, "  Wake-up Drink: "))
}

func TestSetMealField(t *testing.T) {
	s := newTestService(t, nil, "2024-01-01")

	m, field, err := s.SetMealField("wed", "Mid-Morning Snack", "  Orange  ")
	require.NoError(t, err)
	assert.Equal(t, models.FieldMidMorningSnack, field)
	assert.Equal(t, models.Wednesday, m.Day)
	assert.Equal(t, "Orange", m.MidMorningSnack)

	plan, err := s.MealPlan()
	require.NoError(t, err)
	require.Len(t, plan, 7)
	assert.Equal(t, "Orange", plan[2].MidMorningSnack)

	_, _, err = s.SetMealField("Funday", "lunch", "x")
	assert.ErrorIs(t, err, models.ErrUnknownDay)

	_, _, err = s.SetMealField("Monday", "brunch", "x")
	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestUpdateMealPlanDayRequiresPreservedEdits(t *testing.T) {
	preserve := false
	s := newTestService(t, &config.Config{PreserveUserEdits: &preserve}, "2024-01-01")

	err := s.UpdateMealPlanDay(&models.MealPlanEntry{Day: models.Monday, Lunch: "Dal"})
	assert.ErrorIs(t, err, ErrEditsNotPreserved)
}

func TestWorkoutPlan(t *testing.T) {
	s := newTestService(t, nil, "2024-01-01")

	view, err := s.WorkoutPlan("prutha")
	require.NoError(t, err)
	assert.Equal(t, models.UserPrutha, view.User)
	require.Len(t, view.Routine, 7)
	assert.Equal(t, Pair{"Monday", "30-min brisk walk + stretching"}, view.Routine[0])
	assert.Equal(t, Pair{"Sunday", "Walk + breathing exercises"}, view.Routine[6])
	assert.Len(t, view.Tips, 3)
	assert.Equal(t, WorkoutNote, view.Note)

	_, err = s.WorkoutPlan("nobody")
	assert.ErrorIs(t, err, models.ErrUnknownUser)
}
