package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/daybreak/internal/engine"
	"github.com/julianstephens/daybreak/internal/models"
)

type DayCmd struct {
	Review int `help:"Show a past plan day from the retained history instead of today." placeholder:"N"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if c.Review > 0 {
		return c.review(ctx)
	}

	tasks, err := ctx.Manager.EnsureToday(context.Background())
	if errors.Is(err, engine.ErrNoActivePlan) {
		return fmt.Errorf("no active plan; start one with 'daybreak plan start'")
	}
	if err != nil {
		return fmt.Errorf("task generation failed (rerun to retry): %w", err)
	}

	day, _ := ctx.Manager.CurrentDay()
	data := ctx.Manager.Snapshot()

	header := fmt.Sprintf("Day %d of %d", day, data.PlanDuration)
	if ctx.Manager.PlanCompleted() {
		header += "  — plan complete!"
	}
	fmt.Println(titleStyle.Render(header))

	if entry, ok := data.TodayEntry(); ok && entry.Summary != "" {
		fmt.Println(summaryStyle.Render(entry.Summary))
	}
	fmt.Println()

	printTasks(tasks)

	// Pick up any day summary that finished while we were rendering.
	ctx.Manager.Flush()
	return nil
}

func (c *DayCmd) review(ctx *Context) error {
	data := ctx.Manager.Snapshot()

	for _, h := range data.DailyTaskHistory {
		if h.Day != c.Review {
			continue
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("Day %d (%s)", h.Day, formatDate(h.Date))))
		if h.Summary != "" {
			fmt.Println(summaryStyle.Render(h.Summary))
		}
		fmt.Printf("Completed: %s\n\n", formatRate(h.CompletedCount(), len(h.Tasks)))
		printTasks(h.Tasks)
		return nil
	}
	return fmt.Errorf("day %d is not in the retained history", c.Review)
}

func printTasks(tasks []models.DailyTask) {
	if len(tasks) == 0 {
		fmt.Println("  No tasks for this day")
		return
	}

	for _, t := range tasks {
		line := fmt.Sprintf("%s %s — %s", t.Emoji, t.GoalTitle, t.Task)
		if t.IsCompleted {
			fmt.Printf("  [x] %s\n", doneStyle.Render(line))
		} else {
			fmt.Printf("  [ ] %s\n", line)
		}
		fmt.Printf("      %s\n", dimStyle.Render(fmt.Sprintf("%s · %s", t.Intensity, t.ID)))
		if t.Notes != "" {
			fmt.Printf("      Note: %s\n", t.Notes)
		}
	}
}
