// ABOUTME: Weekly meal plan model keyed by weekday name.
// ABOUTME: Holds the default seven-day plan used to reseed the meal plan store.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Weekday is a day name used as the meal plan primary key.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in plan order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var (
	// ErrUnknownDay is returned for names that are not weekdays.
	ErrUnknownDay = errors.New("unknown day")
	// ErrUnknownField is returned for names that are not meal slots.
	ErrUnknownField = errors.New("unknown meal field")
)

// ParseWeekday resolves a day name case-insensitively. Three-letter
// abbreviations are accepted.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), s) || (len(s) == 3 && strings.EqualFold(string(d)[:3], s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownDay, s)
}

// Index returns the position of the day in the week, Monday = 0, or -1.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// MealPlanEntry is the plan for one weekday.
type MealPlanEntry struct {
	Day             Weekday `json:"day" yaml:"day"`
	WakeupDrink     string  `json:"wakeup_drink" yaml:"wakeup_drink"`
	Breakfast       string  `json:"breakfast" yaml:"breakfast"`
	MidMorningSnack string  `json:"mid_morning_snack" yaml:"mid_morning_snack"`
	Lunch           string  `json:"lunch" yaml:"lunch"`
	Snack           string  `json:"snack" yaml:"snack"`
	Dinner          string  `json:"dinner" yaml:"dinner"`
}

// MealField names one editable slot of a MealPlanEntry.
type MealField string

const (
	FieldWakeupDrink     MealField = "wakeup_drink"
	FieldBreakfast       MealField = "breakfast"
	FieldMidMorningSnack MealField = "mid_morning_snack"
	FieldLunch           MealField = "lunch"
	FieldSnack           MealField = "snack"
	FieldDinner          MealField = "dinner"
)

// MealFields lists the slots in serving order.
var MealFields = []MealField{
	FieldWakeupDrink, FieldBreakfast, FieldMidMorningSnack,
	FieldLunch, FieldSnack, FieldDinner,
}

// MealFieldLabels are the display labels used in views and the grocery prompt.
var MealFieldLabels = map[MealField]string{
	FieldWakeupDrink:     "Wake-up Drink",
	FieldBreakfast:       "Breakfast",
	FieldMidMorningSnack: "Mid-Morning Snack",
	FieldLunch:           "Lunch",
	FieldSnack:           "Snack",
	FieldDinner:          "Dinner",
}

// ParseMealField resolves a slot by key ("mid_morning_snack") or by label
// ("Mid-Morning Snack"), case-insensitively.
func ParseMealField(s string) (MealField, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range MealFields {
		if string(f) == norm || strings.EqualFold(MealFieldLabels[f], strings.TrimSpace(s)) {
			return f, nil
		}
	}
	if norm == "wake_up_drink" {
		return FieldWakeupDrink, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownField, s)
}

// Get returns the text of one slot.
func (m *MealPlanEntry) Get(f MealField) string {
	switch f {
	case FieldWakeupDrink:
		return m.WakeupDrink
	case FieldBreakfast:
		return m.Breakfast
	case FieldMidMorningSnack:
		return m.MidMorningSnack
	case FieldLunch:
		return m.Lunch
	case FieldSnack:
		return m.Snack
	case FieldDinner:
		return m.Dinner
	}
	return ""
}

// Set replaces the text of one slot.
func (m *MealPlanEntry) Set(f MealField, text string) error {
	switch f {
	case FieldWakeupDrink:
		m.WakeupDrink = text
	case FieldBreakfast:
		m.Breakfast = text
	case FieldMidMorningSnack:
		m.MidMorningSnack = text
	case FieldLunch:
		m.Lunch = text
	case FieldSnack:
		m.Snack = text
	case FieldDinner:
		m.Dinner = text
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// DefaultMealPlan returns a fresh copy of the built-in weekly plan.
func DefaultMealPlan() []*MealPlanEntry {
	const wakeup = "Warm water + soaked almonds/walnuts"
	return []*MealPlanEntry{
		{Monday, wakeup, "2 eggs + 1 toast + sautéed spinach", "Apple + green tea", "Brown rice + grilled chicken + veg curry + salad", "Buttermilk + roasted chana", "2 rotis + chicken curry + sautéed veg"},
		{Tuesday, wakeup, "Idli (2) + sambar", "Sprouts + guava", "Brown rice + paneer + veg + salad (veg day)", "Boiled egg + tea", "2 rotis + paneer curry + salad (veg day)"},
		{Wednesday, wakeup, "Vegetable oats + almonds", "Green tea + 2 khakras", "Brown rice + chicken + steamed veg + curd", "1 fruit or nuts", "Brown rice + fish curry + steamed veg"},
		{Thursday, wakeup, "2 eggs + 1 toast + sautéed spinach", "1 fruit + green tea", "Brown rice + fish curry + veg + salad", "Green tea + 2 khakras", "Millet roti + tofu curry + salad"},
		{Friday, wakeup, "Smoothie (spinach, banana, chia)", "Sprouts or nuts", "Millet + egg curry + salad", "Chana or 1 egg", "2 rotis + egg bhurji + veg"},
		{Saturday, wakeup, "Idli (2) + sambar", "1 boiled egg", "Brown rice + paneer curry + veg (veg day)", "Buttermilk + almonds", "Roti + dal + bhindi (veg day)"},
		{Sunday, wakeup, "2 eggs + 1 toast + sautéed spinach", "Chana or almonds", "Brown rice + grilled chicken + veg + soup", "Sprouts or salad", "Brown rice + grilled chicken + soup"},
	}
}
