package ai

import (
	"context"
	"errors"

	"github.com/julianstephens/daybreak/internal/models"
)

// Failure taxonomy for AI calls. Transport problems wrap ErrNetwork; a reply
// that is not the expected JSON shape wraps ErrInvalidResponse; a reply that
// parses but carries unusable values wraps ErrDecode.
var (
	ErrNetwork         = errors.New("ai: request failed")
	ErrInvalidResponse = errors.New("ai: unexpected response shape")
	ErrDecode          = errors.New("ai: response decoding failed")
)

// PlanRequest asks for a multi-day strategy per goal.
type PlanRequest struct {
	GoalTitles []string
	Duration   int
}

type GoalPlan struct {
	Title    string   `json:"title"`
	Strategy string   `json:"strategy"`
	SubPlans []string `json:"subPlans"`
}

type PlanResponse struct {
	Goals []GoalPlan `json:"goals"`
}

// DailyTasksRequest asks for one day's tasks across all goals.
// PreviousCompletionRate is nil when the previous day had no tasks.
type DailyTasksRequest struct {
	Goals                  []models.Goal
	Day                    int
	TotalDays              int
	PreviousTasks          []models.DailyTask
	PreviousCompletionRate *float64
	WakeTime               string
	SleepTime              string
}

type TaskItem struct {
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type GoalTasks struct {
	GoalTitle string     `json:"goalTitle"`
	Tasks     []TaskItem `json:"tasks"`
}

type DailyTasksResponse struct {
	DailyTasks []GoalTasks `json:"dailyTasks"`
}

// DaySummaryRequest asks for a short plain-text summary of the day ahead.
type DaySummaryRequest struct {
	Day                       int
	TotalDays                 int
	Name                      string
	Goals                     []models.Goal
	PreviousDayCompletionRate *float64
}

// JournalAnalysisRequest asks for a reflection on a week's journal entries.
type JournalAnalysisRequest struct {
	Entries []models.JournalEntry
}

type JournalAnalysisResponse struct {
	Analysis       string   `json:"analysis"`
	SuggestedGoals []string `json:"suggestedGoals"`
}

// Service is the plan/task/summary generation backend. Implementations must
// honor context cancellation; every call carries a bounded timeout.
type Service interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
	GenerateDailyTasks(ctx context.Context, req DailyTasksRequest) (*DailyTasksResponse, error)
	GenerateDaySummary(ctx context.Context, req DaySummaryRequest) (string, error)
	AnalyzeJournal(ctx context.Context, req JournalAnalysisRequest) (*JournalAnalysisResponse, error)
}
