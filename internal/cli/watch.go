package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/daybreak/internal/models"
)

// WatchCmd runs day-rollover and weekly-analysis checks on a schedule. It is
// the daemon-shaped stand-in for a mobile app's foreground trigger.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	ctx.Manager.SetSummaryListener(func(s models.WeeklySummary) {
		fmt.Printf("New weekly summary (%s – %s): %s\n",
			formatDate(s.WeekStartDate), formatDate(s.WeekEndDate), s.AIAnalysis)
	})

	check := func() {
		if _, err := ctx.Manager.EnsureToday(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		}
		ctx.Manager.CheckWeeklyAnalysis()
	}

	runner := cron.New()
	expr := fmt.Sprintf("@every %s", ctx.Config.Watch.CheckInterval)
	if _, err := runner.AddFunc(expr, check); err != nil {
		return fmt.Errorf("failed to schedule checks: %w", err)
	}

	// One immediate check so a freshly started watcher is never a full
	// interval behind.
	check()

	runner.Start()
	fmt.Printf("Watching (checks %s). Ctrl-C to stop.\n", expr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	runner.Stop()
	ctx.Manager.Close()
	return nil
}
