// ABOUTME: Home view: per-user summary, goal figures, countdown and charts.
// ABOUTME: Built from the progress report over every stored entry.
package dashboard

import (
	"fmt"
	"time"

	"github.com/harperreed/getfit/internal/calc"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/progress"
	"github.com/harperreed/getfit/internal/storage"
)

// Pair is one labelled value ready for display.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Point is one (date, value) sample of a chart series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a named line or bar of a chart.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Chart groups series under a title.
type Chart struct {
	Title  string   `json:"title"`
	Series []Series `json:"series"`
}

// UserView is one user's section of the home view.
type UserView struct {
	User    models.User `json:"user"`
	NoData  bool        `json:"no_data"`
	Summary []Pair      `json:"summary,omitempty"`
	Goal    []Pair      `json:"goal,omitempty"`
	Charts  []Chart     `json:"charts,omitempty"`
}

// HomeView is the progress overview.
type HomeView struct {
	Empty     bool       `json:"empty"`
	Message   string     `json:"message,omitempty"`
	TotalDays int        `json:"total_days,omitempty"`
	Countdown []Pair     `json:"countdown,omitempty"`
	Users     []UserView `json:"users,omitempty"`
}

// Home builds the progress overview for all users.
func (s *Service) Home() (*HomeView, error) {
	entries, err := s.repo.ListEntries(storage.EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	report := s.agg.Build(entries)
	if report.Empty {
		return &HomeView{Empty: true, Message: NoDataMessage}, nil
	}

	view := &HomeView{
		TotalDays: report.Summary.TotalDays,
		Countdown: countdownPairs(report.Countdown),
	}
	for _, u := range models.AllUsers {
		view.Users = append(view.Users, s.userView(u, report))
	}
	return view, nil
}

func (s *Service) userView(u models.User, report *progress.Report) UserView {
	summary, _ := report.Summary.For(u)
	if !summary.HasData {
		return UserView{User: u, NoData: true}
	}

	total := report.Summary.TotalDays
	ratio := func(n int) string { return fmt.Sprintf("%d / %d", n, total) }

	return UserView{
		User: u,
		Summary: []Pair{
			{"Workouts Done", ratio(summary.WorkoutsDone)},
			{"Diet Followed", ratio(summary.DietFollowed)},
			{"Water Drank", ratio(summary.WaterDrank)},
			{"Slept Well", ratio(summary.SleptWell)},
			{"Days Recorded", fmt.Sprintf("%d", summary.DaysRecorded)},
		},
		Goal:   goalPairs(s.profiles[u], summary),
		Charts: charts(report.Series[u]),
	}
}

func goalPairs(profile models.UserProfile, summary progress.UserSummary) []Pair {
	pairs := []Pair{{"Latest Weight", fmt.Sprintf("%.1f kg", summary.LatestWeight)}}

	if bmi, ok := calc.BMI(summary.LatestWeight, profile.HeightCM); ok {
		pairs = append(pairs, Pair{"BMI", fmt.Sprintf("%.2f (%s)", bmi, calc.BMICategory(bmi))})
	} else {
		pairs = append(pairs, Pair{"BMI", "n/a"})
	}

	if !profile.HasGoal() {
		return append(pairs, Pair{"Goal Progress", "n/a (no target weight configured)"})
	}
	first := summary.FirstWeight
	if profile.StartWeight > 0 {
		first = profile.StartWeight
	}
	pct := calc.GoalProgressPercent(first, summary.LatestWeight, profile.TargetWeight)
	return append(pairs,
		Pair{"Target Weight", fmt.Sprintf("%.1f kg", profile.TargetWeight)},
		Pair{"Goal Progress", fmt.Sprintf("%.1f%%", pct)},
	)
}

func countdownPairs(c progress.Countdown) []Pair {
	return []Pair{
		{"Challenge Window", fmt.Sprintf("%s to %s", c.Start.Format(models.DateLayout), c.End.Format(models.DateLayout))},
		{"Days Elapsed", fmt.Sprintf("%d / %d", c.Elapsed, c.Total)},
		{"Days Remaining", fmt.Sprintf("%d", c.Remaining)},
		{"Challenge Progress", fmt.Sprintf("%.0f%%", c.Fraction*100)},
	}
}

// charts turns a gap-filled series into the home view charts.
func charts(series []progress.Point) []Chart {
	pick := func(name string, f func(p progress.Point) (float64, bool)) Series {
		s := Series{Name: name}
		for _, p := range series {
			if v, ok := f(p); ok {
				s.Points = append(s.Points, Point{Date: p.Date, Value: v})
			}
		}
		return s
	}
	always := func(f func(p progress.Point) float64) func(progress.Point) (float64, bool) {
		return func(p progress.Point) (float64, bool) { return f(p), true }
	}

	return []Chart{
		{Title: "Weight (kg)", Series: []Series{
			pick("Weight", always(func(p progress.Point) float64 { return p.Weight })),
		}},
		{Title: "BMI", Series: []Series{
			pick("BMI", func(p progress.Point) (float64, bool) { return p.BMI, p.HasBMI }),
		}},
		{Title: "Sleep >7h", Series: []Series{
			pick("Slept 7h", always(func(p progress.Point) float64 { return flag(p.Slept7h) })),
		}},
		{Title: "Water Intake", Series: []Series{
			pick("Drank Water (Yes=1)", always(func(p progress.Point) float64 { return flag(p.DrankWater) })),
			pick("Water Needed (L)", always(func(p progress.Point) float64 { return p.WaterNeeded })),
		}},
		{Title: "Workout & Diet", Series: []Series{
			pick("Workout Done", always(func(p progress.Point) float64 { return flag(p.WorkoutDone) })),
			pick("Diet Followed", always(func(p progress.Point) float64 { return flag(p.DietDone) })),
		}},
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
