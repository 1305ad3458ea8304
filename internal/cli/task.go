package cli

import "fmt"

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task ID (shown by 'daybreak day')."`
}

func (c *TaskToggleCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	task, err := ctx.Manager.ToggleTask(c.ID)
	if err != nil {
		return err
	}

	if task.IsCompleted {
		fmt.Printf("Done: %s\n", task.Task)
	} else {
		fmt.Printf("Reopened: %s\n", task.Task)
	}
	return nil
}

type TaskNoteCmd struct {
	ID   string `arg:"" help:"Task ID."`
	Note string `arg:"" help:"Note text (empty clears the note)."`
}

func (c *TaskNoteCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if err := ctx.Manager.UpdateTaskNotes(c.ID, c.Note); err != nil {
		return err
	}
	fmt.Println("Note saved")
	return nil
}

type TaskHistoryCmd struct {
	Goal string `arg:"" help:"Goal title to show retained task history for."`
}

func (c *TaskHistoryCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	tasks := ctx.Manager.TaskHistory(c.Goal)
	if len(tasks) == 0 {
		fmt.Printf("No retained tasks for goal %q\n", c.Goal)
		return nil
	}

	completed := 0
	for _, t := range tasks {
		if t.IsCompleted {
			completed++
		}
	}

	fmt.Printf("History for %q — %s\n", c.Goal, formatRate(completed, len(tasks)))
	printTasks(tasks)
	return nil
}
