package ai

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybreak/internal/models"
)

const (
	planSystemPrompt = `You are a habit coach. Given goal titles and a plan duration,
respond with JSON only, shaped as {"goals":[{"title":"...","strategy":"...","subPlans":["..."]}]}.
Return one object per goal, keeping the given titles.`

	tasksSystemPrompt = `You are a habit coach generating one day of tasks.
Respond with JSON only, shaped as {"dailyTasks":[{"goalTitle":"...","tasks":[{"description":"...","emoji":"..."}]}]}.
Keep tasks concrete and achievable within the user's waking hours.`

	summarySystemPrompt = `You are a habit coach. Write a 1-2 sentence encouragement for
the day ahead. Plain text only: no quotes, no emoji, no markdown.`

	journalSystemPrompt = `You are a reflective habit coach reviewing a week of journal
entries. Respond with JSON only, shaped as {"analysis":"...","suggestedGoals":["...","...","..."]}.
Suggest exactly 3 goals.`
)

// DifficultyHint maps a previous day's completion rate to the difficulty
// adjustment passed to task generation. Boundary rates (0.5, 0.8) go to the
// higher bucket.
func DifficultyHint(rate float64) string {
	switch {
	case rate >= 0.8:
		return "increase difficulty"
	case rate >= 0.5:
		return "hold steady"
	default:
		return "simplify"
	}
}

func buildPlanPrompt(req PlanRequest) string {
	var b strings.Builder

	b.WriteString("goal_titles: ")
	b.WriteString(strings.Join(req.GoalTitles, "; "))
	b.WriteString("\n")

	fmt.Fprintf(&b, "duration_days: %d\n", req.Duration)

	return b.String()
}

func buildDailyTasksPrompt(req DailyTasksRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "day: %d of %d\n", req.Day, req.TotalDays)
	fmt.Fprintf(&b, "intensity: %s\n", models.IntensityForDay(req.Day, req.TotalDays))

	b.WriteString("goals:\n")
	for _, g := range req.Goals {
		fmt.Fprintf(&b, "- %s", g.Title)
		if g.Strategy != "" {
			fmt.Fprintf(&b, " (strategy: %s)", g.Strategy)
		}
		b.WriteString("\n")
	}

	if len(req.PreviousTasks) > 0 {
		b.WriteString("previous_tasks:\n")
		for _, t := range req.PreviousTasks {
			status := "missed"
			if t.IsCompleted {
				status = "done"
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", status, t.GoalTitle, t.Task)
		}
	}

	if req.PreviousCompletionRate != nil {
		fmt.Fprintf(&b, "previous_completion_rate: %.2f\n", *req.PreviousCompletionRate)
		fmt.Fprintf(&b, "difficulty_adjustment: %s\n", DifficultyHint(*req.PreviousCompletionRate))
	}

	if req.WakeTime != "" {
		b.WriteString("wake_time: ")
		b.WriteString(req.WakeTime)
		b.WriteString("\n")
	}

	if req.SleepTime != "" {
		b.WriteString("sleep_time: ")
		b.WriteString(req.SleepTime)
		b.WriteString("\n")
	}

	return b.String()
}

func buildDaySummaryPrompt(req DaySummaryRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "day: %d of %d\n", req.Day, req.TotalDays)

	if req.Name != "" {
		b.WriteString("name: ")
		b.WriteString(req.Name)
		b.WriteString("\n")
	}

	b.WriteString("goals: ")
	titles := make([]string, 0, len(req.Goals))
	for _, g := range req.Goals {
		titles = append(titles, g.Title)
	}
	b.WriteString(strings.Join(titles, "; "))
	b.WriteString("\n")

	if req.PreviousDayCompletionRate != nil {
		fmt.Fprintf(&b, "previous_day_completion_rate: %.2f\n", *req.PreviousDayCompletionRate)
		fmt.Fprintf(&b, "tone: %s\n", DifficultyHint(*req.PreviousDayCompletionRate))
	}

	return b.String()
}

func buildJournalPrompt(req JournalAnalysisRequest) string {
	var b strings.Builder

	b.WriteString("entries:\n")
	for _, e := range req.Entries {
		fmt.Fprintf(&b, "- date: %s\n", e.Date.Format("2006-01-02"))
		fmt.Fprintf(&b, "  content: %s\n", e.Content)
		if len(e.CompletedTasks) > 0 {
			fmt.Fprintf(&b, "  completed_tasks: %s\n", strings.Join(e.CompletedTasks, "; "))
		}
	}

	return b.String()
}
