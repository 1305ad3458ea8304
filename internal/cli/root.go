package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybreak/internal/config"
	"github.com/julianstephens/daybreak/internal/engine"
	"github.com/julianstephens/daybreak/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Manager *engine.Manager
	Config  config.Config
}

// load opens the store and pulls the persisted aggregate into the engine.
func (c *Context) load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	return c.Manager.Load()
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	summaryStyle = lipgloss.NewStyle().Italic(true).MarginLeft(2)
)

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatRate(completed, total int) string {
	if total == 0 {
		return "no tasks"
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", completed, total, 100*float64(completed)/float64(total))
}
