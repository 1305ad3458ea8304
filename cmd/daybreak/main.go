package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daybreak/internal/ai"
	"github.com/julianstephens/daybreak/internal/cli"
	"github.com/julianstephens/daybreak/internal/config"
	"github.com/julianstephens/daybreak/internal/engine"
	"github.com/julianstephens/daybreak/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Store file path." type:"path" default:"~/.config/daybreak/daybreak.db"`
	Config  string `help:"Config file path." type:"path" default:"~/.config/daybreak/daybreak.yaml"`
	Verbose bool   `help:"Enable debug logging."`

	Init cli.InitCmd `cmd:"" help:"Initialize daybreak storage."`
	Plan struct {
		Start cli.PlanStartCmd `cmd:"" help:"Pick goals and generate a plan."`
	} `cmd:"" help:"Manage the active plan."`
	Day  cli.DayCmd `cmd:"" help:"Show (and if needed generate) today's tasks." default:"1"`
	Task struct {
		Toggle  cli.TaskToggleCmd  `cmd:"" help:"Toggle a task's completion."`
		Note    cli.TaskNoteCmd    `cmd:"" help:"Attach a note to a task."`
		History cli.TaskHistoryCmd `cmd:"" help:"Show retained task history for a goal."`
	} `cmd:"" help:"Work with today's tasks."`
	Goal struct {
		Add    cli.GoalAddCmd    `cmd:"" help:"Add a custom goal."`
		List   cli.GoalListCmd   `cmd:"" help:"List goals and their strategies."`
		Edit   cli.GoalEditCmd   `cmd:"" help:"Edit a goal."`
		Remove cli.GoalRemoveCmd `cmd:"" help:"Remove a goal."`
	} `cmd:"" help:"Manage goals."`
	Journal struct {
		Add  cli.JournalAddCmd  `cmd:"" help:"Write a journal entry."`
		List cli.JournalListCmd `cmd:"" help:"List journal entries."`
	} `cmd:"" help:"Journal."`
	Summary    cli.SummaryListCmd `cmd:"" help:"Show weekly summaries."`
	Challenges cli.ChallengesCmd  `cmd:"" help:"Show past challenges."`
	Profile    cli.ProfileCmd     `cmd:"" help:"Show or update the profile."`
	Reset      cli.ResetCmd       `cmd:"" help:"Archive the current plan and start fresh."`
	Watch      cli.WatchCmd       `cmd:"" help:"Run periodic rollover and analysis checks."`
	Backup     struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a store backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List store backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a store backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("daybreak"),
		kong.Description("AI-planned habit tracking companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	level := slog.LevelInfo
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Store, ".json") {
		store = storage.NewJSONStore(CLI.Store)
	} else {
		store = storage.NewSQLiteStore(CLI.Store)
	}
	defer store.Close()

	svc := ai.NewClient(cfg.AI.Endpoint, cfg.AI.Model, cfg.AI.APIKey(), cfg.AI.Timeout, logger)
	manager := engine.New(store, svc, logger)
	defer manager.Flush()

	appCtx := &cli.Context{
		Store:   store,
		Manager: manager,
		Config:  cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
