package models

import "time"

// JournalEntry is a user-written note for a day. Entries are immutable after
// creation except for IsVisible, which flips to true exactly once when the
// entry has been folded into a WeeklySummary.
type JournalEntry struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Content        string    `json:"content"`
	CompletedTasks []string  `json:"completed_tasks"`
	IsVisible      bool      `json:"is_visible"`
}

// WeeklySummary is the AI analysis of one batch of journal entries.
type WeeklySummary struct {
	ID             string    `json:"id"`
	WeekStartDate  time.Time `json:"week_start_date"`
	WeekEndDate    time.Time `json:"week_end_date"`
	AIAnalysis     string    `json:"ai_analysis"`
	SuggestedGoals []string  `json:"suggested_goals"`
}
