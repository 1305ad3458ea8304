package cli

import "fmt"

type JournalAddCmd struct {
	Content string   `arg:"" help:"Journal entry text."`
	Done    []string `help:"Completed tasks to attach to the entry."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	entry := ctx.Manager.AddJournalEntry(c.Content, c.Done)
	fmt.Printf("Journal entry saved (%s)\n", formatDate(entry.Date))

	// The weekly-analysis check runs in the background; wait for it so a
	// one-shot CLI invocation doesn't drop an in-flight summary.
	ctx.Manager.Flush()
	return nil
}

type JournalListCmd struct{}

func (c *JournalListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	data := ctx.Manager.Snapshot()
	if len(data.JournalEntries) == 0 {
		fmt.Println("No journal entries yet")
		return nil
	}

	for _, e := range data.JournalEntries {
		marker := " "
		if e.IsVisible {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, formatDate(e.Date), e.Content)
		for _, t := range e.CompletedTasks {
			fmt.Printf("    - %s\n", t)
		}
	}
	fmt.Println(dimStyle.Render("* folded into a weekly summary"))
	return nil
}
