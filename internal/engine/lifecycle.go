package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/daybreak/internal/ai"
	"github.com/julianstephens/daybreak/internal/matching"
	"github.com/julianstephens/daybreak/internal/models"
)

// StartPlan requests a multi-day strategy for the selected goals and, on
// success, starts the plan clock at now. A generation failure leaves all
// state untouched; retry is a fresh StartPlan call.
func (m *Manager) StartPlan(ctx context.Context, duration int) error {
	m.mu.Lock()
	if len(m.data.Goals) == 0 {
		m.mu.Unlock()
		return ErrNoGoals
	}
	if duration <= 0 {
		m.mu.Unlock()
		return fmt.Errorf("plan duration must be positive, got %d", duration)
	}

	titles := make([]string, len(m.data.Goals))
	for i, g := range m.data.Goals {
		titles[i] = g.Title
	}
	req := ai.PlanRequest{GoalTitles: titles, Duration: duration}
	epoch := m.epoch
	m.mu.Unlock()

	resp, err := m.svc.GeneratePlan(ctx, req)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return ErrStaleResponse
	}

	// Fold returned strategies into local goals. Titles are matched fuzzily;
	// the first matching AI goal wins and unmatched local goals keep empty
	// strategy/subPlans.
	aiTitles := make([]string, len(resp.Goals))
	for i, g := range resp.Goals {
		aiTitles[i] = g.Title
	}
	for i := range m.data.Goals {
		j := matching.FindTitle(m.data.Goals[i].Title, aiTitles)
		if j < 0 {
			continue
		}
		m.data.Goals[i].Strategy = resp.Goals[j].Strategy
		m.data.Goals[i].SubPlans = resp.Goals[j].SubPlans
	}

	now := m.clock()
	m.data.PlanDuration = duration
	m.data.PlanStartDate = &now
	m.data.LastCompletedDay = nil
	m.data.DailyTaskHistory = []models.DailyTaskHistory{}

	// New plan instance: responses still in flight for the old one are dropped.
	m.epoch++
	m.summaryPending = make(map[int]bool)

	m.persistLocked()
	return nil
}

// EnsureToday guarantees the current day has a task list and returns it.
// Calling it again on the same calendar day is a no-op that performs no AI
// call. On a day boundary it closes out the previous day (recording
// lastCompletedDay and the completion rate) before requesting new tasks.
func (m *Manager) EnsureToday(ctx context.Context) ([]models.DailyTask, error) {
	req, tasks, epoch, err := m.prepareToday()
	if err != nil || req == nil {
		return tasks, err
	}

	resp, err := m.svc.GenerateDailyTasks(ctx, *req)
	if err != nil {
		return nil, err
	}

	return m.applyDailyTasks(resp, *req, epoch)
}

// prepareToday decides under the lock whether generation is needed. It
// returns the request to issue, or the already-current task list when no AI
// call is required.
func (m *Manager) prepareToday() (*ai.DailyTasksRequest, []models.DailyTask, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data.PlanStartDate == nil {
		return nil, nil, 0, ErrNoActivePlan
	}

	now := m.clock()
	day, _ := m.data.CurrentDay(now)

	// Same calendar day: reuse the stored list. Backfill the day summary if
	// it never arrived.
	if entry, ok := m.data.TodayEntry(); ok && models.SameDay(entry.Date, now) {
		if entry.Summary == "" {
			m.requestDaySummaryLocked(entry.Day, previousRate(m.data, entry.Day))
		}
		return nil, copyTasks(entry.Tasks), 0, nil
	}

	// Day boundary crossed. Close out the previous day before generating.
	req := ai.DailyTasksRequest{
		Goals:     copyGoals(m.data.Goals),
		Day:       day,
		TotalDays: m.data.PlanDuration,
		WakeTime:  m.data.WakeTime,
		SleepTime: m.data.SleepTime,
	}

	if entry, ok := m.data.TodayEntry(); ok {
		if m.data.LastCompletedDay == nil || *m.data.LastCompletedDay != day-1 {
			prev := day - 1
			m.data.LastCompletedDay = &prev
			m.persistLocked()
		}
		req.PreviousTasks = copyTasks(entry.Tasks)
		if len(entry.Tasks) > 0 {
			rate := entry.CompletionRate()
			req.PreviousCompletionRate = &rate
		}
	}

	// Final day reached: review only, no further generation.
	if m.data.PlanCompleted(now) {
		var tasks []models.DailyTask
		if entry, ok := m.data.TodayEntry(); ok {
			tasks = copyTasks(entry.Tasks)
		}
		return nil, tasks, 0, nil
	}

	return &req, nil, m.epoch, nil
}

// applyDailyTasks merges a generation response under the lock. Responses that
// outlived their plan, or raced a concurrent generation for the same day, are
// discarded without mutating state.
func (m *Manager) applyDailyTasks(resp *ai.DailyTasksResponse, req ai.DailyTasksRequest, epoch int) ([]models.DailyTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		return nil, ErrStaleResponse
	}

	now := m.clock()
	if entry, ok := m.data.TodayEntry(); ok && models.SameDay(entry.Date, now) {
		return copyTasks(entry.Tasks), nil
	}

	tasks := m.buildTasksLocked(resp, req.Day)
	m.appendDailyHistoryLocked(req.Day, tasks)
	m.persistLocked()

	m.requestDaySummaryLocked(req.Day, req.PreviousCompletionRate)
	return copyTasks(tasks), nil
}

// buildTasksLocked turns a generation response into DailyTasks, resolving
// returned goal titles against local goals so downstream queries join on the
// canonical title.
func (m *Manager) buildTasksLocked(resp *ai.DailyTasksResponse, day int) []models.DailyTask {
	localTitles := make([]string, len(m.data.Goals))
	for i, g := range m.data.Goals {
		localTitles[i] = g.Title
	}

	intensity := models.IntensityForDay(day, m.data.PlanDuration)

	var tasks []models.DailyTask
	for _, gt := range resp.DailyTasks {
		title := gt.GoalTitle
		emoji := ""
		if j := matching.FindTitle(gt.GoalTitle, localTitles); j >= 0 {
			title = m.data.Goals[j].Title
			emoji = m.data.Goals[j].Emoji
		}
		for _, item := range gt.Tasks {
			taskEmoji := item.Emoji
			if taskEmoji == "" {
				taskEmoji = emoji
			}
			tasks = append(tasks, models.DailyTask{
				ID:        uuid.NewString(),
				GoalTitle: title,
				Task:      item.Description,
				Emoji:     taskEmoji,
				Intensity: intensity,
			})
		}
	}
	return tasks
}

// requestDaySummaryLocked asks for the day's summary in the background. At
// most one request per day is in flight; failures are logged and retried on
// the next EnsureToday.
func (m *Manager) requestDaySummaryLocked(day int, prevRate *float64) {
	if m.summaryPending[day] {
		return
	}
	m.summaryPending[day] = true

	req := ai.DaySummaryRequest{
		Day:                       day,
		TotalDays:                 m.data.PlanDuration,
		Name:                      m.data.Name,
		Goals:                     copyGoals(m.data.Goals),
		PreviousDayCompletionRate: prevRate,
	}
	epoch := m.epoch

	m.jobs.Go(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, m.aiTimeout)
		defer cancel()

		summary, err := m.svc.GenerateDaySummary(ctx, req)

		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.summaryPending, day)

		if err != nil {
			m.log.Debug("day summary generation failed", "day", day, "error", err)
			return
		}
		if m.epoch != epoch {
			return
		}

		for i := range m.data.DailyTaskHistory {
			if m.data.DailyTaskHistory[i].Day == day {
				m.data.DailyTaskHistory[i].Summary = summary
				m.persistLocked()
				return
			}
		}
	})
}

// previousRate returns the completion rate of the day before the given one,
// or nil when that day is not retained or had no tasks.
func previousRate(u *models.UserData, day int) *float64 {
	for _, h := range u.DailyTaskHistory {
		if h.Day == day-1 && len(h.Tasks) > 0 {
			rate := h.CompletionRate()
			return &rate
		}
	}
	return nil
}
