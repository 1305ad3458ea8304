package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daybreak/internal/ai"
	"github.com/julianstephens/daybreak/internal/models"
	"github.com/julianstephens/daybreak/internal/storage"
)

var (
	// ErrNoActivePlan is returned by operations that require a started plan.
	ErrNoActivePlan = errors.New("no active plan")
	// ErrNoGoals is returned when starting a plan without any goals selected.
	ErrNoGoals = errors.New("no goals selected")
	// ErrStaleResponse is returned when an AI response arrives after the plan
	// it belongs to was reset or replaced.
	ErrStaleResponse = errors.New("response belongs to a replaced plan")

	ErrGoalNotFound = errors.New("goal not found")
	ErrTaskNotFound = errors.New("task not found")
)

// historyLimit caps retained daily history; older entries are evicted first.
const historyLimit = 7

// weeklyWindow is the age past which journal entries become eligible for
// weekly analysis.
const weeklyWindow = 7 * 24 * time.Hour

// Manager owns the live UserData aggregate. All mutation goes through its
// mutex, including late-arriving AI completions, so a toggle and an in-flight
// generation can never interleave. Every mutation is followed by a persist;
// persist failures are logged and the in-memory state stays authoritative.
type Manager struct {
	mu    sync.Mutex
	store storage.Provider
	svc   ai.Service
	log   *slog.Logger

	data      *models.UserData
	jobs      *dispatcher
	clock     func() time.Time
	aiTimeout time.Duration

	// epoch identifies the current plan instance. Background jobs capture it
	// at dispatch and drop their result if it changed, so responses for a
	// reset or replaced plan are never applied.
	epoch int

	summaryPending map[int]bool
	weeklyPending  bool
	onSummary      func(models.WeeklySummary)
}

func New(store storage.Provider, svc ai.Service, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:          store,
		svc:            svc,
		log:            logger,
		data:           models.NewUserData(),
		jobs:           newDispatcher(),
		clock:          time.Now,
		aiTimeout:      ai.DefaultTimeout,
		summaryPending: make(map[int]bool),
	}
}

// Load pulls the persisted UserData record into memory.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.store.GetUserData()
	if err != nil {
		return fmt.Errorf("failed to load user data: %w", err)
	}
	m.data = user
	return nil
}

// Flush waits for all dispatched background work to complete.
func (m *Manager) Flush() {
	m.jobs.Flush()
}

// Close cancels in-flight background work and waits for it to drain.
func (m *Manager) Close() {
	m.jobs.Shutdown()
}

// SetSummaryListener registers a callback invoked whenever a weekly summary
// is applied. Must be called before the manager is put to work.
func (m *Manager) SetSummaryListener(fn func(models.WeeklySummary)) {
	m.onSummary = fn
}

// persistLocked writes the aggregate through to the store. Failures are
// logged, never propagated: the in-memory state remains authoritative until
// the next successful save.
func (m *Manager) persistLocked() {
	if err := m.store.SaveUserData(m.data); err != nil {
		m.log.Warn("failed to persist user data", "error", err)
	}
}

// Snapshot returns a deep copy of the aggregate for read-only use.
func (m *Manager) Snapshot() *models.UserData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUserData(m.data)
}

func cloneUserData(u *models.UserData) *models.UserData {
	data, err := json.Marshal(u)
	if err != nil {
		return models.NewUserData()
	}
	out := models.NewUserData()
	if err := json.Unmarshal(data, out); err != nil {
		return models.NewUserData()
	}
	return out
}

// CurrentDay returns the clamped 1-based plan day; ok is false without a plan.
func (m *Manager) CurrentDay() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.CurrentDay(m.clock())
}

// PlanCompleted reports whether the active plan has reached its final day.
func (m *Manager) PlanCompleted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.PlanCompleted(m.clock())
}

// AddGoal registers a goal ahead of plan generation.
func (m *Manager) AddGoal(title, emoji string, custom bool) models.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()

	goal := models.Goal{
		ID:       uuid.NewString(),
		Title:    title,
		Emoji:    emoji,
		IsCustom: custom,
		SubPlans: []string{},
	}
	m.data.Goals = append(m.data.Goals, goal)
	m.persistLocked()
	return goal
}

// UpdateGoal renames a goal and/or changes its emoji. Empty values leave the
// field unchanged.
func (m *Manager) UpdateGoal(id, title, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.data.Goals {
		if m.data.Goals[i].ID != id {
			continue
		}
		if title != "" {
			m.data.Goals[i].Title = title
		}
		if emoji != "" {
			m.data.Goals[i].Emoji = emoji
		}
		m.persistLocked()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
}

func (m *Manager) RemoveGoal(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.data.Goals {
		if m.data.Goals[i].ID == id {
			m.data.Goals = append(m.data.Goals[:i], m.data.Goals[i+1:]...)
			m.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
}

// ProfileUpdate carries optional profile changes; nil fields are untouched.
type ProfileUpdate struct {
	Name                   *string
	Sex                    *string
	Age                    *int
	HeightCM               *float64
	WeightKG               *float64
	WakeTime               *string
	SleepTime              *string
	NotificationPreference *string
}

func (m *Manager) UpdateProfile(u ProfileUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.Name != nil {
		m.data.Name = *u.Name
	}
	if u.Sex != nil {
		m.data.Sex = *u.Sex
	}
	if u.Age != nil {
		m.data.Age = *u.Age
	}
	if u.HeightCM != nil {
		m.data.HeightCM = *u.HeightCM
	}
	if u.WeightKG != nil {
		m.data.WeightKG = *u.WeightKG
	}
	if u.WakeTime != nil {
		m.data.WakeTime = *u.WakeTime
	}
	if u.SleepTime != nil {
		m.data.SleepTime = *u.SleepTime
	}
	if u.NotificationPreference != nil {
		m.data.NotificationPreference = *u.NotificationPreference
	}
	m.persistLocked()
}

// AppendDailyHistory appends a new day entry, evicting from the front once
// the retention limit is exceeded.
func (m *Manager) AppendDailyHistory(day int, tasks []models.DailyTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendDailyHistoryLocked(day, tasks)
	m.persistLocked()
}

func (m *Manager) appendDailyHistoryLocked(day int, tasks []models.DailyTask) {
	m.data.DailyTaskHistory = append(m.data.DailyTaskHistory, models.DailyTaskHistory{
		Day:   day,
		Date:  m.clock(),
		Tasks: tasks,
	})
	for len(m.data.DailyTaskHistory) > historyLimit {
		m.data.DailyTaskHistory = m.data.DailyTaskHistory[1:]
	}
}

// ReplaceTodayTasks overwrites the current day's task list. No-op when there
// is no history yet.
func (m *Manager) ReplaceTodayTasks(tasks []models.DailyTask) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data.TodayEntry()
	if !ok {
		return
	}
	entry.Tasks = tasks
	m.persistLocked()
}

// TodayTasks returns a copy of the current day's task list.
func (m *Manager) TodayTasks() []models.DailyTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data.TodayEntry()
	if !ok {
		return nil
	}
	return copyTasks(entry.Tasks)
}

// TaskHistory returns every retained task for a goal, in history order.
// Matching is exact string equality on the goal title.
func (m *Manager) TaskHistory(goalTitle string) []models.DailyTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.DailyTask
	for _, h := range m.data.DailyTaskHistory {
		for _, t := range h.Tasks {
			if t.GoalTitle == goalTitle {
				out = append(out, t)
			}
		}
	}
	return out
}

// ToggleTask flips a task's completion in the current day, stamping or
// clearing CompletedAt. The change lands in the history entry directly, so
// the live list and retained history cannot drift apart.
func (m *Manager) ToggleTask(id string) (models.DailyTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data.TodayEntry()
	if !ok {
		return models.DailyTask{}, ErrNoActivePlan
	}

	for i := range entry.Tasks {
		if entry.Tasks[i].ID != id {
			continue
		}
		if entry.Tasks[i].IsCompleted {
			entry.Tasks[i].IsCompleted = false
			entry.Tasks[i].CompletedAt = nil
		} else {
			now := m.clock()
			entry.Tasks[i].IsCompleted = true
			entry.Tasks[i].CompletedAt = &now
		}
		m.persistLocked()
		return entry.Tasks[i], nil
	}
	return models.DailyTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// UpdateTaskNotes sets the notes on a task in the current day.
func (m *Manager) UpdateTaskNotes(id, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data.TodayEntry()
	if !ok {
		return ErrNoActivePlan
	}

	for i := range entry.Tasks {
		if entry.Tasks[i].ID == id {
			entry.Tasks[i].Notes = notes
			m.persistLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// AddJournalEntry appends a journal entry and kicks off the weekly-analysis
// check in the background. The append itself never blocks on the AI service.
func (m *Manager) AddJournalEntry(content string, completedTasks []string) models.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := models.JournalEntry{
		ID:             uuid.NewString(),
		Date:           m.clock(),
		Content:        content,
		CompletedTasks: completedTasks,
	}
	m.data.JournalEntries = append(m.data.JournalEntries, entry)
	m.persistLocked()

	m.maybeAnalyzeJournalLocked()
	return entry
}

// ResetPlan abandons the current plan. When goals exist, an immutable
// PastChallenge snapshot is taken first; afterwards all plan state, history,
// journal, and summaries are cleared. In-flight AI responses for the old plan
// are invalidated.
func (m *Manager) ResetPlan() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.data.Goals) > 0 {
		completed, total := m.data.CompletionStats()
		if total < 1 {
			total = 1
		}
		m.data.PastChallenges = append(m.data.PastChallenges, models.PastChallenge{
			ID:             uuid.NewString(),
			CompletedDate:  m.clock(),
			Duration:       m.data.PlanDuration,
			Goals:          copyGoals(m.data.Goals),
			CompletionRate: float64(completed) / float64(total),
			JournalEntries: copyEntries(m.data.JournalEntries),
		})
	}

	m.data.PlanStartDate = nil
	m.data.LastCompletedDay = nil
	m.data.Goals = []models.Goal{}
	m.data.DailyTaskHistory = []models.DailyTaskHistory{}
	m.data.JournalEntries = []models.JournalEntry{}
	m.data.WeeklySummaries = []models.WeeklySummary{}

	m.epoch++
	m.summaryPending = make(map[int]bool)
	m.persistLocked()
}

func copyTasks(tasks []models.DailyTask) []models.DailyTask {
	out := make([]models.DailyTask, len(tasks))
	copy(out, tasks)
	return out
}

func copyGoals(goals []models.Goal) []models.Goal {
	out := make([]models.Goal, len(goals))
	copy(out, goals)
	return out
}

func copyEntries(entries []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(entries))
	copy(out, entries)
	return out
}
