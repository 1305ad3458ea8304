package cli

import "fmt"

type SummaryListCmd struct{}

func (c *SummaryListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	data := ctx.Manager.Snapshot()
	if len(data.WeeklySummaries) == 0 {
		fmt.Println("No weekly summaries yet")
		return nil
	}

	for _, s := range data.WeeklySummaries {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Week %s – %s", formatDate(s.WeekStartDate), formatDate(s.WeekEndDate))))
		fmt.Printf("  %s\n", s.AIAnalysis)
		if len(s.SuggestedGoals) > 0 {
			fmt.Println("  Suggested next goals:")
			for _, g := range s.SuggestedGoals {
				fmt.Printf("    - %s\n", g)
			}
		}
		fmt.Println()
	}
	return nil
}

type ChallengesCmd struct{}

func (c *ChallengesCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	data := ctx.Manager.Snapshot()
	if len(data.PastChallenges) == 0 {
		fmt.Println("No past challenges yet")
		return nil
	}

	fmt.Println("Past challenges:")
	for _, pc := range data.PastChallenges {
		fmt.Printf("  %s  %d days, %.0f%% completed\n",
			formatDate(pc.CompletedDate), pc.Duration, pc.CompletionRate*100)
		for _, g := range pc.Goals {
			fmt.Printf("      %s %s\n", g.Emoji, g.Title)
		}
	}
	return nil
}
