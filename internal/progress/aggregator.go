// ABOUTME: Aggregator ties profiles, the challenge length and a clock together.
// ABOUTME: Produces the full progress report that the dashboard views render.
package progress

import (
	"time"

	"github.com/harperreed/getfit/internal/models"
)

// Report is the aggregated view over all entries.
type Report struct {
	Empty     bool                                 `json:"empty"`
	Start     time.Time                            `json:"start"`
	End       time.Time                            `json:"end"`
	Summary   Summary                              `json:"summary"`
	Countdown Countdown                            `json:"countdown"`
	Series    map[models.User][]Point              `json:"series"`
	Collapsed map[models.User][]*models.DailyEntry `json:"-"`
}

// Aggregator builds progress reports for the configured users.
type Aggregator struct {
	profiles      map[models.User]models.UserProfile
	challengeDays int
	now           func() time.Time
}

// NewAggregator creates an Aggregator. A nil clock uses time.Now and a
// non-positive challengeDays uses DefaultChallengeDays.
func NewAggregator(profiles map[models.User]models.UserProfile, challengeDays int, clock func() time.Time) *Aggregator {
	if clock == nil {
		clock = time.Now
	}
	if challengeDays <= 0 {
		challengeDays = DefaultChallengeDays
	}
	return &Aggregator{profiles: profiles, challengeDays: challengeDays, now: clock}
}

// Today returns the current calendar date.
func (a *Aggregator) Today() time.Time {
	return models.DateOf(a.now())
}

// Build aggregates entries for every tracked user.
func (a *Aggregator) Build(entries []*models.DailyEntry) *Report {
	collapsed := CollapseLatest(entries)
	r := &Report{
		Summary:   Summarize(collapsed, models.AllUsers),
		Series:    make(map[models.User][]Point),
		Collapsed: collapsed,
	}

	start, end, ok := Window(entries, a.Today())
	if !ok {
		r.Empty = true
		return r
	}
	r.Start, r.End = start, end
	r.Countdown = NewCountdown(start, a.Today(), a.challengeDays)

	for _, u := range models.AllUsers {
		if s := BuildSeries(collapsed[u], a.profiles[u], start, end); s != nil {
			r.Series[u] = s
		}
	}
	return r
}

// Series returns the gap-filled series for one user over the shared window.
func (a *Aggregator) Series(entries []*models.DailyEntry, u models.User) []Point {
	start, end, ok := Window(entries, a.Today())
	if !ok {
		return nil
	}
	return BuildSeries(CollapseLatest(entries)[u], a.profiles[u], start, end)
}
