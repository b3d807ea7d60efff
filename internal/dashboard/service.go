// ABOUTME: Dashboard service: the presentation boundary over storage and progress.
// ABOUTME: Views come back as label/value pairs and chart series for any renderer.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/getfit/internal/calc"
	"github.com/harperreed/getfit/internal/config"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/progress"
	"github.com/harperreed/getfit/internal/storage"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrInvalidInput is returned for malformed request values such as dates.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEditsNotPreserved is returned for meal plan edits when the plan is
	// reseeded from defaults on every start.
	ErrEditsNotPreserved = errors.New("meal plan edits are disabled (preserve_user_edits is false)")
)

// NoDataMessage is shown when the store holds no entries at all.
const NoDataMessage = "No data available. Please add daily input."

// Service renders dashboard views from a Repository.
type Service struct {
	repo     storage.Repository
	cfg      *config.Config
	profiles map[models.User]models.UserProfile
	agg      *progress.Aggregator
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over repo. cfg may be nil for defaults.
func NewService(repo storage.Repository, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s := &Service{
		repo:     repo,
		cfg:      cfg,
		profiles: cfg.GetProfiles(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.agg = progress.NewAggregator(s.profiles, cfg.GetChallengeDays(), s.now)
	return s
}

// Today returns the current calendar date.
func (s *Service) Today() time.Time {
	return models.DateOf(s.now())
}

// SubmissionInput is one daily submission. Date is optional (YYYY-MM-DD)
// and defaults to today.
type SubmissionInput struct {
	User        string  `json:"user"`
	Weight      float64 `json:"weight"`
	WorkoutDone bool    `json:"workout_done"`
	DietDone    bool    `json:"diet_done"`
	Slept7h     bool    `json:"slept_7h"`
	DrankWater  bool    `json:"drank_water"`
	Date        string  `json:"date,omitempty"`
}

// Submit validates the input and stores one new entry. The water target is
// computed here and stored with the entry.
func (s *Service) Submit(in SubmissionInput) (*models.DailyEntry, error) {
	user, err := models.ParseUser(in.User)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateWeight(in.Weight); err != nil {
		return nil, err
	}

	e := models.NewDailyEntry(user, in.Weight).
		WithDate(s.now()).
		WithFlags(in.WorkoutDone, in.DietDone, in.Slept7h, in.DrankWater)
	if in.Date != "" {
		d, err := models.ParseDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		e.WithDate(d)
	}

	if err := s.repo.CreateEntry(e); err != nil {
		return nil, fmt.Errorf("submit entry: %w", err)
	}

	log.WithFields(log.Fields{
		"id":     e.ID,
		"user":   e.User,
		"date":   e.DateString(),
		"weight": e.Weight,
	}).Info("entry submitted")
	return e, nil
}

// SubmissionView returns the helper text shown while entering a weight.
func (s *Service) SubmissionView(userName string, weight float64) ([]Pair, error) {
	user, err := models.ParseUser(userName)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateWeight(weight); err != nil {
		return nil, err
	}
	profile := s.profiles[user]
	water := calc.WaterTarget(weight)

	pairs := []Pair{
		{"Height", fmt.Sprintf("%.0f inches (%g cm)", calc.CMToInches(profile.HeightCM), profile.HeightCM)},
		{"Age", fmt.Sprintf("%d", profile.Age)},
		{"Recommended water intake", fmt.Sprintf("%.2f liters", water)},
	}
	if bmi, ok := calc.BMI(weight, profile.HeightCM); ok {
		pairs = append(pairs, Pair{"BMI", fmt.Sprintf("%.2f (%s)", bmi, calc.BMICategory(bmi))})
	}
	return pairs, nil
}

// Entries lists a user's entries, newest first. An empty userName lists all users.
func (s *Service) Entries(userName string, limit int) ([]*models.DailyEntry, error) {
	filter := storage.EntryFilter{Limit: limit, Descending: true}
	if userName != "" {
		user, err := models.ParseUser(userName)
		if err != nil {
			return nil, err
		}
		filter.User = &user
	}
	return s.repo.ListEntries(filter)
}

// TodayEntries returns the effective entry for today of each user that has one.
func (s *Service) TodayEntries() (map[models.User]*models.DailyEntry, error) {
	today := s.Today()
	entries, err := s.repo.ListEntries(storage.EntryFilter{Since: &today, Until: &today})
	if err != nil {
		return nil, err
	}

	result := make(map[models.User]*models.DailyEntry)
	for u, days := range progress.CollapseLatest(entries) {
		result[u] = days[len(days)-1]
	}
	return result, nil
}

// Progress returns the gap-filled daily series for one user.
func (s *Service) Progress(userName string) ([]progress.Point, error) {
	user, err := models.ParseUser(userName)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(storage.EntryFilter{})
	if err != nil {
		return nil, err
	}
	return s.agg.Series(entries, user), nil
}

// WorkoutView is the static weekly plan of one user.
type WorkoutView struct {
	User    models.User `json:"user"`
	Caution string      `json:"caution,omitempty"`
	Focus   []string    `json:"focus"`
	Routine []Pair      `json:"routine"`
	Tips    []string    `json:"tips"`
	Note    string      `json:"note"`
}

// WorkoutNote is shown under every workout plan.
const WorkoutNote = "Always consult a medical professional before starting or modifying your workout routine."

// WorkoutPlan returns the configured workout plan of a user.
func (s *Service) WorkoutPlan(userName string) (*WorkoutView, error) {
	user, err := models.ParseUser(userName)
	if err != nil {
		return nil, err
	}
	plan := s.profiles[user].WorkoutPlan

	view := &WorkoutView{
		User:    user,
		Caution: plan.Caution,
		Focus:   plan.Focus,
		Tips:    plan.Tips,
		Note:    WorkoutNote,
	}
	for _, d := range models.Weekdays {
		if activity, ok := plan.Routine[d]; ok {
			view.Routine = append(view.Routine, Pair{string(d), activity})
		}
	}
	return view, nil
}

// MealPlan returns the plan ordered Monday through Sunday.
func (s *Service) MealPlan() ([]*models.MealPlanEntry, error) {
	return s.repo.ListMealPlan()
}

// UpdateMealPlanDay replaces one day of the plan.
func (s *Service) UpdateMealPlanDay(m *models.MealPlanEntry) error {
	if !s.cfg.GetPreserveUserEdits() {
		return ErrEditsNotPreserved
	}
	if m.Day.Index() < 0 {
		return fmt.Errorf("%w: %s", models.ErrUnknownDay, m.Day)
	}
	if err := s.repo.UpdateMealPlanDay(m); err != nil {
		return err
	}
	log.WithField("day", m.Day).Info("meal plan updated")
	return nil
}

// SetMealField changes a single slot of one day and returns the updated day
// together with the field that fieldName resolved to.
func (s *Service) SetMealField(dayName, fieldName, text string) (*models.MealPlanEntry, models.MealField, error) {
	day, err := models.ParseWeekday(dayName)
	if err != nil {
		return nil, "", err
	}
	field, err := models.ParseMealField(fieldName)
	if err != nil {
		return nil, "", err
	}
	m, err := s.repo.GetMealPlanDay(day)
	if err != nil {
		return nil, "", err
	}
	if err := m.Set(field, strings.TrimSpace(text)); err != nil {
		return nil, "", err
	}
	if err := s.UpdateMealPlanDay(m); err != nil {
		return nil, "", err
	}
	return m, field, nil
}

// GroceryPromptHeader introduces the meal plan in the grocery prompt.
const GroceryPromptHeader = "Given the following weekly meal plan, generate a consolidated grocery shopping list for all ingredients needed. " +
	"Group similar items and quantities where possible. Only output the grocery list, nothing else.\n\n"

// GroceryPrompt renders the meal plan as a prompt for an LLM to turn into a
// shopping list.
func (s *Service) GroceryPrompt() (string, error) {
	plan, err := s.repo.ListMealPlan()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(GroceryPromptHeader)
	for _, m := range plan {
		fmt.Fprintf(&sb, "%s:\n", m.Day)
		for _, f := range models.MealFields {
			fmt.Fprintf(&sb, "  %s: %s\n", models.MealFieldLabels[f], m.Get(f))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
