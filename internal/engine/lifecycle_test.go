package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/daybreak/internal/ai"
	"github.com/julianstephens/daybreak/internal/models"
)

func TestEnsureToday_RequiresActivePlan(t *testing.T) {
	m, _, _ := newTestManager(t)
	if _, err := m.EnsureToday(context.Background()); !errors.Is(err, ErrNoActivePlan) {
		t.Fatalf("expected ErrNoActivePlan, got %v", err)
	}
}

func TestEnsureToday_GeneratesDayOne(t *testing.T) {
	m, svc, _ := newTestManager(t)
	startPlan(t, m, 21)

	tasks, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].GoalTitle != "Read more" || tasks[0].Task != "Read 10 pages" {
		t.Errorf("unexpected task: %+v", tasks[0])
	}
	if tasks[0].Intensity != models.IntensityBeginner {
		t.Errorf("day 1 of 21 must be beginner intensity, got %s", tasks[0].Intensity)
	}
	if tasks[0].ID == "" {
		t.Error("generated task must carry an ID")
	}

	data := m.Snapshot()
	if len(data.DailyTaskHistory) != 1 || data.DailyTaskHistory[0].Day != 1 {
		t.Errorf("expected one history entry for day 1, got %+v", data.DailyTaskHistory)
	}

	if svc.lastTasksReq.Day != 1 || len(svc.lastTasksReq.PreviousTasks) != 0 {
		t.Errorf("day 1 request must have no previous tasks: %+v", svc.lastTasksReq)
	}

	// The day summary is requested in the background
	m.Flush()
	data = m.Snapshot()
	if entry, _ := data.TodayEntry(); entry.Summary != "A gentle start to the day." {
		t.Errorf("expected cached day summary, got %q", entry.Summary)
	}
	if svc.summaryCalls != 1 {
		t.Errorf("expected 1 summary call, got %d", svc.summaryCalls)
	}
}

func TestEnsureToday_SameDayIsIdempotent(t *testing.T) {
	m, svc, clk := newTestManager(t)
	startPlan(t, m, 21)

	first, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("first EnsureToday failed: %v", err)
	}
	m.Flush()

	clk.Advance(6 * time.Hour) // later the same day

	second, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("second EnsureToday failed: %v", err)
	}

	if svc.tasksCalls != 1 {
		t.Errorf("second call on the same day must not hit the AI service, got %d calls", svc.tasksCalls)
	}
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Errorf("task list changed across same-day calls: %+v vs %+v", first, second)
	}
}

func TestEnsureToday_RolloverClosesPreviousDay(t *testing.T) {
	m, svc, clk := newTestManager(t)
	startPlan(t, m, 21)

	tasks, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	if _, err := m.ToggleTask(tasks[0].ID); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	m.Flush()

	clk.Advance(24 * time.Hour)

	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("rollover EnsureToday failed: %v", err)
	}

	data := m.Snapshot()
	if data.LastCompletedDay == nil || *data.LastCompletedDay != 1 {
		t.Errorf("expected last completed day 1, got %v", data.LastCompletedDay)
	}
	if len(data.DailyTaskHistory) != 2 || data.DailyTaskHistory[1].Day != 2 {
		t.Errorf("expected history entries for days 1 and 2, got %+v", data.DailyTaskHistory)
	}

	if svc.lastTasksReq.Day != 2 {
		t.Errorf("expected generation request for day 2, got %d", svc.lastTasksReq.Day)
	}
	if len(svc.lastTasksReq.PreviousTasks) != 1 {
		t.Errorf("rollover request must carry the previous day's tasks: %+v", svc.lastTasksReq)
	}
	if svc.lastTasksReq.PreviousCompletionRate == nil || *svc.lastTasksReq.PreviousCompletionRate != 1.0 {
		t.Errorf("expected previous completion rate 1.0, got %v", svc.lastTasksReq.PreviousCompletionRate)
	}
}

func TestEnsureToday_GenerationFailureLeavesStateUnchanged(t *testing.T) {
	m, svc, clk := newTestManager(t)
	startPlan(t, m, 21)

	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	m.Flush()

	clk.Advance(24 * time.Hour)
	svc.tasksErr = fmt.Errorf("backend down")

	if _, err := m.EnsureToday(context.Background()); err == nil {
		t.Fatal("expected rollover generation to fail")
	}

	data := m.Snapshot()
	if len(data.DailyTaskHistory) != 1 {
		t.Errorf("failed generation must not append history, got %d entries", len(data.DailyTaskHistory))
	}

	// Retry is a fresh call of the same transition
	svc.tasksErr = nil
	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(m.Snapshot().DailyTaskHistory) != 2 {
		t.Error("retry did not append the new day")
	}
}

func TestEnsureToday_CompletedPlanStopsGenerating(t *testing.T) {
	m, svc, clk := newTestManager(t)
	startPlan(t, m, 21)

	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	m.Flush()
	callsAfterDayOne := svc.tasksCalls

	clk.Advance(20 * 24 * time.Hour) // day 21 of 21

	if day, _ := m.CurrentDay(); day != 21 {
		t.Fatalf("expected current day 21, got %d", day)
	}
	if !m.PlanCompleted() {
		t.Fatal("expected plan to be completed")
	}

	tasks, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("EnsureToday on completed plan failed: %v", err)
	}
	if svc.tasksCalls != callsAfterDayOne {
		t.Errorf("completed plan must not trigger generation, got %d extra calls", svc.tasksCalls-callsAfterDayOne)
	}
	if len(tasks) != 1 {
		t.Errorf("expected the last retained day's tasks, got %d", len(tasks))
	}
	if data := m.Snapshot(); data.LastCompletedDay == nil || *data.LastCompletedDay != 20 {
		t.Errorf("expected previous day bookkeeping even when completed, got %v", data.LastCompletedDay)
	}
}

func TestEnsureToday_ResolvesTitlesAgainstLocalGoals(t *testing.T) {
	m, svc, _ := newTestManager(t)
	startPlan(t, m, 21)

	svc.tasksResp = &ai.DailyTasksResponse{DailyTasks: []ai.GoalTasks{
		// Paraphrased title still joins to the local goal
		{GoalTitle: "reading more", Tasks: []ai.TaskItem{{Description: "Read 10 pages"}}},
		// Unknown title is kept verbatim
		{GoalTitle: "Mystery", Tasks: []ai.TaskItem{{Description: "???", Emoji: "❓"}}},
	}}

	tasks, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	if tasks[0].GoalTitle != "Read more" {
		t.Errorf("expected canonical local title, got %q", tasks[0].GoalTitle)
	}
	if tasks[0].Emoji != "📚" {
		t.Errorf("expected goal emoji fallback for tasks without one, got %q", tasks[0].Emoji)
	}
	if tasks[1].GoalTitle != "Mystery" {
		t.Errorf("unmatched titles must pass through, got %q", tasks[1].GoalTitle)
	}
}

func TestDaySummary_RetriedAfterFailure(t *testing.T) {
	m, svc, clk := newTestManager(t)
	startPlan(t, m, 21)

	svc.summaryErr = fmt.Errorf("backend down")
	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	m.Flush()

	data := m.Snapshot()
	if entry, _ := data.TodayEntry(); entry.Summary != "" {
		t.Fatalf("failed summary must leave the entry empty, got %q", entry.Summary)
	}

	// A later same-day check requests the summary again
	svc.summaryErr = nil
	clk.Advance(time.Hour)
	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("second EnsureToday failed: %v", err)
	}
	m.Flush()

	data = m.Snapshot()
	if entry, _ := data.TodayEntry(); entry.Summary == "" {
		t.Error("expected summary to be backfilled on retry")
	}
	if svc.summaryCalls != 2 {
		t.Errorf("expected 2 summary calls, got %d", svc.summaryCalls)
	}
}

func TestEnsureToday_IntensityTracksProgress(t *testing.T) {
	m, _, clk := newTestManager(t)
	startPlan(t, m, 10)

	if _, err := m.EnsureToday(context.Background()); err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}

	clk.Advance(7 * 24 * time.Hour) // day 8 of 10: past the 0.7 threshold
	tasks, err := m.EnsureToday(context.Background())
	if err != nil {
		t.Fatalf("EnsureToday failed: %v", err)
	}
	if tasks[0].Intensity != models.IntensityAdvanced {
		t.Errorf("day 8 of 10 must be advanced intensity, got %s", tasks[0].Intensity)
	}
}
