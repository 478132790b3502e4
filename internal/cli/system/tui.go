package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/tui"
)

// confirmStart is the onboarding prompt. Tests replace it.
var confirmStart = tui.ConfirmStart

// runProgram runs the full-screen model. Tests replace it.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := ctx.AcquireWriter()
	if err != nil {
		return err
	}
	defer l.Release()

	tr, err := ctx.Journey()
	if err != nil {
		return err
	}

	if !tr.IsStarted() {
		start, err := confirmStart()
		if err != nil {
			return err
		}
		if !start {
			ctx.Printf("Come back when you are ready. Run 'niyyah start' or 'niyyah tui' to begin.\n")
			return nil
		}
		if err := tr.StartJourney(ctx.Clock()); err != nil {
			return err
		}
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	if err := runProgram(tui.NewModel(tr, ctx.Scheduler, ctx.Clock)); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	tr.Flush()
	return nil
}
