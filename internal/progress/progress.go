// ABOUTME: Progress aggregation: turns sparse daily entries into gap-filled series.
// ABOUTME: Also computes per-user summary counts and the challenge countdown.
package progress

import (
	"sort"
	"time"

	"github.com/harperreed/getfit/internal/calc"
	"github.com/harperreed/getfit/internal/models"
)

// DefaultChallengeDays is the length of the challenge window.
const DefaultChallengeDays = 90

const day = 24 * time.Hour

// Point is one calendar day of a user's series. Observed is false for days
// filled from an earlier value.
type Point struct {
	Date        time.Time `json:"date"`
	Weight      float64   `json:"weight"`
	BMI         float64   `json:"bmi,omitempty"`
	HasBMI      bool      `json:"has_bmi"`
	WorkoutDone bool      `json:"workout_done"`
	DietDone    bool      `json:"diet_done"`
	Slept7h     bool      `json:"slept_7h"`
	DrankWater  bool      `json:"drank_water"`
	WaterNeeded float64   `json:"water_needed"`
	Observed    bool      `json:"observed"`
}

// UserSummary holds adherence counts for one user.
type UserSummary struct {
	User         models.User `json:"user"`
	HasData      bool        `json:"has_data"`
	WorkoutsDone int         `json:"workouts_done"`
	DietFollowed int         `json:"diet_followed"`
	WaterDrank   int         `json:"water_drank"`
	SleptWell    int         `json:"slept_well"`
	DaysRecorded int         `json:"days_recorded"`
	FirstWeight  float64     `json:"first_weight,omitempty"`
	LatestWeight float64     `json:"latest_weight,omitempty"`
}

// Summary holds counts for all users. TotalDays is the number of calendar
// days spanned by all recorded data and is the shared denominator.
type Summary struct {
	Empty     bool          `json:"empty"`
	TotalDays int           `json:"total_days"`
	Users     []UserSummary `json:"users"`
}

// Countdown describes the fixed challenge window.
type Countdown struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Total     int       `json:"total"`
	Elapsed   int       `json:"elapsed"`
	Remaining int       `json:"remaining"`
	Fraction  float64   `json:"fraction"`
}

// CollapseLatest keeps one entry per (user, date): the one with the highest
// ID, which is the last submitted. Each user's entries come back ordered by date.
func CollapseLatest(entries []*models.DailyEntry) map[models.User][]*models.DailyEntry {
	latest := make(map[models.User]map[string]*models.DailyEntry)
	for _, e := range entries {
		byDate, ok := latest[e.User]
		if !ok {
			byDate = make(map[string]*models.DailyEntry)
			latest[e.User] = byDate
		}
		key := e.DateString()
		if cur, ok := byDate[key]; !ok || e.ID > cur.ID {
			byDate[key] = e
		}
	}

	collapsed := make(map[models.User][]*models.DailyEntry, len(latest))
	for u, byDate := range latest {
		days := make([]*models.DailyEntry, 0, len(byDate))
		for _, e := range byDate {
			days = append(days, e)
		}
		sort.Slice(days, func(i, j int) bool {
			return days[i].Date.Before(days[j].Date)
		})
		collapsed[u] = days
	}
	return collapsed
}

// Window returns the observation window: the earliest recorded date across
// all users through the later of today and the latest recorded date.
// ok is false when there are no entries.
func Window(entries []*models.DailyEntry, today time.Time) (start, end time.Time, ok bool) {
	first, last, ok := span(entries)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end = models.DateOf(today)
	if last.After(end) {
		end = last
	}
	return first, end, true
}

// BuildSeries produces exactly one Point per calendar day in [start, end]
// for one user. days must be that user's collapsed entries. Missing days carry
// the previous day's values; a missing start day is seeded with the profile's
// starting weight, or the first recorded weight when none is configured.
// Returns nil when the user has no entries.
func BuildSeries(days []*models.DailyEntry, profile models.UserProfile, start, end time.Time) []Point {
	if len(days) == 0 {
		return nil
	}
	start, end = models.DateOf(start), models.DateOf(end)
	if end.Before(start) {
		return nil
	}

	byDate := make(map[string]*models.DailyEntry, len(days))
	for _, e := range days {
		byDate[e.DateString()] = e
	}

	seed := profile.StartWeight
	if seed <= 0 {
		seed = days[0].Weight
	}
	prev := Point{Weight: seed, WaterNeeded: calc.WaterTarget(seed)}

	n := int(end.Sub(start)/day) + 1
	series := make([]Point, 0, n)
	for d := start; !d.After(end); d = d.Add(day) {
		p := prev
		p.Observed = false
		if e, ok := byDate[d.Format(models.DateLayout)]; ok {
			p = Point{
				Weight:      e.Weight,
				WorkoutDone: e.WorkoutDone,
				DietDone:    e.DietDone,
				Slept7h:     e.Slept7h,
				DrankWater:  e.DrankWater,
				WaterNeeded: e.WaterNeeded,
				Observed:    true,
			}
		}
		p.Date = d
		p.BMI, p.HasBMI = calc.BMI(p.Weight, profile.HeightCM)
		series = append(series, p)
		prev = p
	}
	return series
}

// Summarize counts adherence flags over collapsed per-day entries.
func Summarize(collapsed map[models.User][]*models.DailyEntry, users []models.User) Summary {
	var all []*models.DailyEntry
	for _, days := range collapsed {
		all = append(all, days...)
	}

	first, last, ok := span(all)
	if !ok {
		s := Summary{Empty: true}
		for _, u := range users {
			s.Users = append(s.Users, UserSummary{User: u})
		}
		return s
	}

	s := Summary{TotalDays: daysBetween(first, last) + 1}
	for _, u := range users {
		us := UserSummary{User: u}
		days := collapsed[u]
		if len(days) > 0 {
			us.HasData = true
			us.DaysRecorded = len(days)
			us.FirstWeight = days[0].Weight
			us.LatestWeight = days[len(days)-1].Weight
		}
		for _, e := range days {
			us.WorkoutsDone += boolCount(e.WorkoutDone)
			us.DietFollowed += boolCount(e.DietDone)
			us.WaterDrank += boolCount(e.DrankWater)
			us.SleptWell += boolCount(e.Slept7h)
		}
		s.Users = append(s.Users, us)
	}
	return s
}

// For returns the summary of one user.
func (s Summary) For(u models.User) (UserSummary, bool) {
	for _, us := range s.Users {
		if us.User == u {
			return us, true
		}
	}
	return UserSummary{}, false
}

// NewCountdown computes the challenge countdown for a window of length days
// anchored at start.
func NewCountdown(start, today time.Time, days int) Countdown {
	start, today = models.DateOf(start), models.DateOf(today)
	if days <= 0 {
		return Countdown{Start: start, End: start}
	}

	end := start.Add(time.Duration(days-1) * day)
	c := Countdown{
		Start:     start,
		End:       end,
		Total:     days,
		Elapsed:   min(max(daysBetween(start, today), 0), days),
		Remaining: max(0, daysBetween(today, end)+1),
	}
	c.Fraction = float64(c.Elapsed) / float64(c.Total)
	if c.Fraction > 1 {
		c.Fraction = 1
	}
	return c
}

// span returns the first and last entry dates.
func span(entries []*models.DailyEntry) (first, last time.Time, ok bool) {
	for i, e := range entries {
		d := models.DateOf(e.Date)
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
	}
	return first, last, len(entries) > 0
}

// daysBetween counts whole calendar days from a to b; negative when b is earlier.
func daysBetween(a, b time.Time) int {
	return int(models.DateOf(b).Sub(models.DateOf(a)) / day)
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
