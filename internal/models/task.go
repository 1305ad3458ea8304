package models

import "time"

type Intensity string

const (
	IntensityBeginner     Intensity = "beginner"
	IntensityIntermediate Intensity = "intermediate"
	IntensityAdvanced     Intensity = "advanced"
)

// IntensityForDay derives a difficulty tier from progress through the plan.
// Boundary ratios (0.3, 0.7) belong to the lower band.
func IntensityForDay(day, totalDays int) Intensity {
	if totalDays <= 0 {
		return IntensityBeginner
	}
	ratio := float64(day) / float64(totalDays)
	switch {
	case ratio <= 0.3:
		return IntensityBeginner
	case ratio <= 0.7:
		return IntensityIntermediate
	default:
		return IntensityAdvanced
	}
}

// DailyTask is a single actionable item for one day of the plan. GoalTitle
// references the owning Goal by title, not ID, because generated tasks come
// back from the AI service keyed by title.
type DailyTask struct {
	ID          string     `json:"id"`
	GoalTitle   string     `json:"goal_title"`
	Task        string     `json:"task"`
	Emoji       string     `json:"emoji"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Intensity   Intensity  `json:"intensity"`
	Notes       string     `json:"notes"`
}

// DailyTaskHistory records one calendar day of an active plan. The last
// retained entry is always the current day while a plan is running.
type DailyTaskHistory struct {
	Day     int         `json:"day"`
	Date    time.Time   `json:"date"`
	Tasks   []DailyTask `json:"tasks"`
	Summary string      `json:"summary,omitempty"`
}

func (h DailyTaskHistory) CompletedCount() int {
	n := 0
	for _, t := range h.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// CompletionRate returns completed/total for the day, or 0 when the day has
// no tasks.
func (h DailyTaskHistory) CompletionRate() float64 {
	if len(h.Tasks) == 0 {
		return 0
	}
	return float64(h.CompletedCount()) / float64(len(h.Tasks))
}
