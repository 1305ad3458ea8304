package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/julianstephens/daybreak/internal/ai"
	"github.com/julianstephens/daybreak/internal/models"
)

// maybeAnalyzeJournalLocked batches journal entries older than a week and
// dispatches one analysis request for them. Entries are addressed by ID, not
// position, so entries appended while the request is in flight can never be
// marked by mistake. Failures are silent; the batch is retried on the next
// journal append.
func (m *Manager) maybeAnalyzeJournalLocked() {
	if m.weeklyPending {
		return
	}

	cutoff := m.clock().Add(-weeklyWindow)

	var batch []models.JournalEntry
	var ids []string
	for _, e := range m.data.JournalEntries {
		if !e.IsVisible && !e.Date.After(cutoff) {
			batch = append(batch, e)
			ids = append(ids, e.ID)
		}
	}
	if len(batch) == 0 {
		return
	}

	weekStart := batch[0].Date.AddDate(0, 0, -7)
	weekEnd := batch[0].Date
	epoch := m.epoch
	req := ai.JournalAnalysisRequest{Entries: batch}

	m.weeklyPending = true
	m.jobs.Go(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, m.aiTimeout)
		defer cancel()

		resp, err := m.svc.AnalyzeJournal(ctx, req)

		m.mu.Lock()
		defer m.mu.Unlock()
		m.weeklyPending = false

		if err != nil {
			m.log.Debug("weekly journal analysis failed", "entries", len(ids), "error", err)
			return
		}
		if m.epoch != epoch {
			return
		}

		summary := models.WeeklySummary{
			ID:             uuid.NewString(),
			WeekStartDate:  weekStart,
			WeekEndDate:    weekEnd,
			AIAnalysis:     resp.Analysis,
			SuggestedGoals: resp.SuggestedGoals,
		}
		m.applyWeeklySummaryLocked(summary, ids)
	})
}

// CheckWeeklyAnalysis re-evaluates the weekly batch trigger outside of a
// journal append. Used by the periodic watcher.
func (m *Manager) CheckWeeklyAnalysis() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeAnalyzeJournalLocked()
}

// ApplyWeeklySummary records a summary and marks the analyzed entries as
// folded in. Unknown entry IDs (from a batch that predates a reset) are
// ignored.
func (m *Manager) ApplyWeeklySummary(summary models.WeeklySummary, entryIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyWeeklySummaryLocked(summary, entryIDs)
}

func (m *Manager) applyWeeklySummaryLocked(summary models.WeeklySummary, entryIDs []string) {
	m.data.WeeklySummaries = append(m.data.WeeklySummaries, summary)

	marked := make(map[string]bool, len(entryIDs))
	for _, id := range entryIDs {
		marked[id] = true
	}
	for i := range m.data.JournalEntries {
		if marked[m.data.JournalEntries[i].ID] {
			m.data.JournalEntries[i].IsVisible = true
		}
	}

	m.persistLocked()

	if m.onSummary != nil {
		go m.onSummary(summary)
	}
}
