package cli

import "fmt"

type GoalAddCmd struct {
	Title string `arg:"" help:"Goal title."`
	Emoji string `help:"Emoji shown next to the goal."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	goal := ctx.Manager.AddGoal(c.Title, c.Emoji, true)
	fmt.Printf("Added goal %s (%s)\n", goal.Title, goal.ID)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	data := ctx.Manager.Snapshot()
	if len(data.Goals) == 0 {
		fmt.Println("No goals yet. Add one with 'daybreak goal add'.")
		return nil
	}

	fmt.Println("Goals:")
	for _, g := range data.Goals {
		fmt.Printf("  %s %s  (%s)\n", g.Emoji, g.Title, g.ID)
		if g.Strategy != "" {
			fmt.Printf("      Strategy: %s\n", g.Strategy)
		}
		for _, sp := range g.SubPlans {
			fmt.Printf("      - %s\n", sp)
		}
	}
	return nil
}

type GoalEditCmd struct {
	ID    string `arg:"" help:"Goal ID."`
	Title string `help:"New title."`
	Emoji string `help:"New emoji."`
}

func (c *GoalEditCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if err := ctx.Manager.UpdateGoal(c.ID, c.Title, c.Emoji); err != nil {
		return err
	}
	fmt.Println("Goal updated")
	return nil
}

type GoalRemoveCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalRemoveCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if err := ctx.Manager.RemoveGoal(c.ID); err != nil {
		return err
	}
	fmt.Println("Goal removed")
	return nil
}
