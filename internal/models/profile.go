// ABOUTME: Static per-user profile: body measurements, goals, and workout plan.
// ABOUTME: Profiles come from configuration and are never persisted in the stores.
package models

// UserProfile holds the fixed facts about a tracked user.
// A zero StartWeight or TargetWeight means "not configured".
type UserProfile struct {
	HeightCM     float64     `json:"height_cm"`
	Age          int         `json:"age"`
	StartWeight  float64     `json:"start_weight,omitempty"`
	TargetWeight float64     `json:"target_weight,omitempty"`
	WorkoutPlan  WorkoutPlan `json:"workout_plan"`
}

// HasGoal reports whether a target weight is configured. Without a start
// weight, goal progress is measured from the first recorded weight.
func (p UserProfile) HasGoal() bool {
	return p.TargetWeight > 0
}

// WorkoutPlan is a static weekly routine with guidance.
type WorkoutPlan struct {
	Caution string             `json:"caution,omitempty"`
	Focus   []string           `json:"focus,omitempty"`
	Routine map[Weekday]string `json:"routine,omitempty"`
	Tips    []string           `json:"tips,omitempty"`
}

// DefaultProfiles returns the built-in profiles. Start and target weights are
// left unset; they must be supplied through configuration.
func DefaultProfiles() map[User]UserProfile {
	return map[User]UserProfile{
		UserOmkar: {
			HeightCM: 177.8,
			Age:      37,
			WorkoutPlan: WorkoutPlan{
				Caution: "Post-vitrectomy with oil removal: avoid lifting more than 5 kg.",
				Focus: []string{
					"Light mobility",
					"Gentle walking",
					"Breathing exercises",
					"No strength or core-heavy training until medically cleared",
				},
				Routine: map[Weekday]string{
					Monday:    "20-min slow walk + stretching",
					Tuesday:   "Breathing + neck/shoulder rolls",
					Wednesday: "20-min walk + deep breathing",
					Thursday:  "Rest or short walk",
					Friday:    "Breathing + light yoga",
					Saturday:  "25-min walk",
					Sunday:    "Rest",
				},
				Tips: []string{
					"Avoid jerky head movements.",
					"Wear sunglasses if light sensitive.",
					"Follow doctor's post-op instructions always.",
				},
			},
		},
		UserPrutha: {
			HeightCM: 167.6,
			Age:      31,
			WorkoutPlan: WorkoutPlan{
				Caution: "Diabetes management: focus on consistency and moderate cardio.",
				Focus: []string{
					"Moderate-intensity cardio (walking, cycling)",
					"Resistance training (bodyweight, light dumbbells)",
					"Flexibility and relaxation",
				},
				Routine: map[Weekday]string{
					Monday:    "30-min brisk walk + stretching",
					Tuesday:   "Light resistance workout (15-20 min)",
					Wednesday: "Yoga (focus on flexibility & breath)",
					Thursday:  "Rest / Walk after dinner (15-20 min)",
					Friday:    "30-min cycling or walking",
					Saturday:  "Resistance + yoga combo (30 min)",
					Sunday:    "Walk + breathing exercises",
				},
				Tips: []string{
					"Monitor blood sugar before & after workouts.",
					"Stay hydrated.",
					"Eat a small snack if blood sugar drops.",
				},
			},
		},
	}
}
