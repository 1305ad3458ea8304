package models

import "time"

// PastChallenge is an immutable snapshot of a finished or abandoned plan,
// taken at reset time.
type PastChallenge struct {
	ID             string         `json:"id"`
	CompletedDate  time.Time      `json:"completed_date"`
	Duration       int            `json:"duration"`
	Goals          []Goal         `json:"goals"`
	CompletionRate float64        `json:"completion_rate"`
	JournalEntries []JournalEntry `json:"journal_entries"`
}

// UserData is the aggregate root for everything the app persists. Exactly one
// instance is live at a time; all mutation goes through the engine, which
// persists after every write.
type UserData struct {
	Name                   string `json:"name,omitempty"`
	Sex                    string `json:"sex,omitempty"`
	Age                    int    `json:"age,omitempty"`
	HeightCM               float64 `json:"height_cm,omitempty"`
	WeightKG               float64 `json:"weight_kg,omitempty"`
	WakeTime               string `json:"wake_time,omitempty"`  // HH:MM
	SleepTime              string `json:"sleep_time,omitempty"` // HH:MM
	NotificationPreference string `json:"notification_preference,omitempty"`

	PlanDuration     int        `json:"plan_duration"`
	Goals            []Goal     `json:"goals"`
	PlanStartDate    *time.Time `json:"plan_start_date,omitempty"`
	LastCompletedDay *int       `json:"last_completed_day,omitempty"`

	DailyTaskHistory []DailyTaskHistory `json:"daily_task_history"`
	JournalEntries   []JournalEntry     `json:"journal_entries"`
	WeeklySummaries  []WeeklySummary    `json:"weekly_summaries"`
	PastChallenges   []PastChallenge    `json:"past_challenges"`
}

func NewUserData() *UserData {
	return &UserData{
		Goals:            []Goal{},
		DailyTaskHistory: []DailyTaskHistory{},
		JournalEntries:   []JournalEntry{},
		WeeklySummaries:  []WeeklySummary{},
		PastChallenges:   []PastChallenge{},
	}
}

// SameDay reports whether two timestamps fall on the same calendar day in
// local time.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CurrentDay returns the 1-based plan day at the given time, clamped to the
// plan duration. ok is false when no plan has been started.
func (u *UserData) CurrentDay(now time.Time) (day int, ok bool) {
	if u.PlanStartDate == nil {
		return 0, false
	}
	elapsed := int(startOfDay(now).Sub(startOfDay(*u.PlanStartDate)).Hours() / 24)
	day = elapsed + 1
	if day < 1 {
		day = 1
	}
	if u.PlanDuration > 0 && day > u.PlanDuration {
		day = u.PlanDuration
	}
	return day, true
}

// PlanCompleted reports whether the active plan has reached its final day.
// Always false when no plan has been started.
func (u *UserData) PlanCompleted(now time.Time) bool {
	day, ok := u.CurrentDay(now)
	if !ok {
		return false
	}
	return day >= u.PlanDuration
}

// TodayEntry returns the last history entry, which is the current day's entry
// while a plan is active. ok is false when there is no history.
func (u *UserData) TodayEntry() (*DailyTaskHistory, bool) {
	if len(u.DailyTaskHistory) == 0 {
		return nil, false
	}
	return &u.DailyTaskHistory[len(u.DailyTaskHistory)-1], true
}

// CompletionStats totals completed and overall task counts across the
// retained history.
func (u *UserData) CompletionStats() (completed, total int) {
	for _, h := range u.DailyTaskHistory {
		completed += h.CompletedCount()
		total += len(h.Tasks)
	}
	return completed, total
}
