package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/daybreak/internal/ai"
	"github.com/julianstephens/daybreak/internal/models"
	"github.com/julianstephens/daybreak/internal/storage"
)

// testClock is an adjustable clock injected into the manager.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeService is a scriptable ai.Service recording calls and requests.
type fakeService struct {
	mu sync.Mutex

	planResp  *ai.PlanResponse
	planErr   error
	planCalls int

	tasksResp    *ai.DailyTasksResponse
	tasksErr     error
	tasksCalls   int
	lastTasksReq ai.DailyTasksRequest

	summary      string
	summaryErr   error
	summaryCalls int

	journalResp    *ai.JournalAnalysisResponse
	journalErr     error
	journalCalls   int
	lastJournalReq ai.JournalAnalysisRequest

	// When set, AnalyzeJournal blocks until the channel is closed.
	journalGate chan struct{}
}

func newFakeService() *fakeService {
	return &fakeService{
		planResp: &ai.PlanResponse{Goals: []ai.GoalPlan{
			{Title: "Read more", Strategy: "start small", SubPlans: []string{"10 pages a day"}},
		}},
		tasksResp: &ai.DailyTasksResponse{DailyTasks: []ai.GoalTasks{
			{GoalTitle: "Read more", Tasks: []ai.TaskItem{{Description: "Read 10 pages", Emoji: "📚"}}},
		}},
		summary: "A gentle start to the day.",
		journalResp: &ai.JournalAnalysisResponse{
			Analysis:       "A steady week.",
			SuggestedGoals: []string{"Stretch", "Walk", "Hydrate"},
		},
	}
}

func (f *fakeService) GeneratePlan(ctx context.Context, req ai.PlanRequest) (*ai.PlanResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planCalls++
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.planResp, nil
}

func (f *fakeService) GenerateDailyTasks(ctx context.Context, req ai.DailyTasksRequest) (*ai.DailyTasksResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasksCalls++
	f.lastTasksReq = req
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return f.tasksResp, nil
}

func (f *fakeService) GenerateDaySummary(ctx context.Context, req ai.DaySummaryRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryCalls++
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeService) AnalyzeJournal(ctx context.Context, req ai.JournalAnalysisRequest) (*ai.JournalAnalysisResponse, error) {
	f.mu.Lock()
	gate := f.journalGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.journalCalls++
	f.lastJournalReq = req
	if f.journalErr != nil {
		return nil, f.journalErr
	}
	return f.journalResp, nil
}

func newTestManager(t *testing.T) (*Manager, *fakeService, *testClock) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "daybreak.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	svc := newFakeService()
	clk := newTestClock()

	m := New(store, svc, slog.Default())
	m.clock = clk.Now
	if err := m.Load(); err != nil {
		t.Fatalf("manager load failed: %v", err)
	}

	return m, svc, clk
}

// startPlan adds the default goal and starts a plan of the given duration.
func startPlan(t *testing.T, m *Manager, duration int) {
	t.Helper()
	m.AddGoal("Read more", "📚", false)
	if err := m.StartPlan(context.Background(), duration); err != nil {
		t.Fatalf("StartPlan failed: %v", err)
	}
}

func taskList(day int, completed int, total int) []models.DailyTask {
	tasks := make([]models.DailyTask, total)
	for i := range tasks {
		tasks[i] = models.DailyTask{
			ID:          "task",
			GoalTitle:   "Read more",
			Task:        "Read",
			IsCompleted: i < completed,
		}
	}
	return tasks
}
