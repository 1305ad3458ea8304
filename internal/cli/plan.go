package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// predefinedGoals are the built-in choices offered at plan start. Custom
// goals can be typed in alongside.
var predefinedGoals = []struct {
	Title string
	Emoji string
}{
	{"Read more", "📚"},
	{"Exercise daily", "🏃"},
	{"Meditate", "🧘"},
	{"Drink more water", "💧"},
	{"Sleep earlier", "😴"},
	{"Eat healthier", "🥗"},
	{"Journal daily", "✍️"},
	{"Learn a language", "🗣️"},
}

type PlanStartCmd struct {
	Duration int  `help:"Plan duration in days (defaults to the configured duration)."`
	Pick     bool `help:"Pick goals interactively before starting."`
}

func (c *PlanStartCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	duration := c.Duration
	if duration <= 0 {
		duration = ctx.Config.Plan.DefaultDuration
	}

	if c.Pick {
		if err := c.pickGoals(ctx); err != nil {
			return err
		}
	}

	data := ctx.Manager.Snapshot()
	if len(data.Goals) == 0 {
		return fmt.Errorf("no goals selected; add goals first or rerun with --pick")
	}

	fmt.Printf("Generating a %d-day plan for %d goal(s)...\n", duration, len(data.Goals))
	if err := ctx.Manager.StartPlan(context.Background(), duration); err != nil {
		return fmt.Errorf("plan generation failed (rerun to retry): %w", err)
	}

	fmt.Println("Plan ready. Run 'daybreak day' to get today's tasks.")
	return nil
}

func (c *PlanStartCmd) pickGoals(ctx *Context) error {
	var selected []string
	var custom string

	options := make([]huh.Option[string], 0, len(predefinedGoals))
	for _, g := range predefinedGoals {
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", g.Emoji, g.Title), g.Title))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which habits do you want to build?").
				Options(options...).
				Value(&selected),
			huh.NewInput().
				Title("Anything else? (optional, comma-separated)").
				Value(&custom),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	for _, title := range selected {
		emoji := ""
		for _, g := range predefinedGoals {
			if g.Title == title {
				emoji = g.Emoji
				break
			}
		}
		ctx.Manager.AddGoal(title, emoji, false)
	}

	for _, title := range strings.Split(custom, ",") {
		title = strings.TrimSpace(title)
		if title != "" {
			ctx.Manager.AddGoal(title, "", true)
		}
	}

	return nil
}
