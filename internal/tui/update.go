package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/content"
	apperrors "github.com/julianstephens/niyyah/internal/errors"
	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/progress"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.now = m.clock()
		return m, m.tick()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateWriting {
			return m.updateWriting(msg)
		}
		return m.updateDashboard(msg)
	}

	if m.state == StateWriting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Write):
		return m.startWriting()
	}
	return m, nil
}

func (m Model) startWriting() (tea.Model, tea.Cmd) {
	m.now = m.clock()
	m.message, m.errMsg = "", ""

	slot, ok := timeslot.CurrentSlot(m.now)
	if !ok {
		m.errMsg = "Rest period: the morning slot opens at 8:00 AM."
		return m, nil
	}
	affirmation := content.Affirmation(m.tracker.ElapsedDays(m.now), slot)
	session, err := progress.NewSession(m.tracker, slot, affirmation, m.clock)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotStarted):
			m.errMsg = "Journey not started."
		case errors.Is(err, apperrors.ErrSlotDone):
			m.message = fmt.Sprintf("%s is already complete.", timeslot.Info(slot).Label)
		default:
			m.errMsg = err.Error()
		}
		return m, nil
	}

	m.session = session
	m.state = StateWriting
	m.input.Reset()
	return m, m.input.Focus()
}

func (m Model) updateWriting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.message = fmt.Sprintf("Stopped at %d of %d repetitions. Nothing was recorded.", m.session.Completed(), m.session.Target())
		m.errMsg = ""
		return m.leaveWriting(), nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.session.ShouldAutoSubmit(m.input.Value()) {
		return m.submit()
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	res, err := m.session.Submit(value)
	if err != nil {
		if errors.Is(err, apperrors.ErrTextMismatch) {
			info, _ := m.session.Check(value)
			m.errMsg = fmt.Sprintf("%d%% written, %d%% needed.", info.Percent, constants.SubmitThresholdPercent)
		} else {
			m.errMsg = err.Error()
		}
		return m, nil
	}

	m.errMsg = ""
	m.input.Reset()
	if !res.Done {
		m.message = fmt.Sprintf("✓ %d/%d", res.Completed, res.Target)
		return m, nil
	}

	slot := m.session.Slot()
	if m.scheduler != nil {
		if err := m.scheduler.RecordInteraction(slot, m.clock()); err != nil {
			logger.Warn("Failed to record interaction", "slot", slot, "error", err)
		}
	}
	m.message = fmt.Sprintf("✓ %s complete.", timeslot.Info(slot).Label)
	if res.Progress.IsComplete() {
		m.message += fmt.Sprintf(" All three done today. Streak: %d", m.tracker.TrueStreak(m.clock()))
	}
	return m.leaveWriting(), nil
}

func (m Model) leaveWriting() Model {
	m.session = nil
	m.state = StateDashboard
	m.input.Reset()
	m.input.Blur()
	m.now = m.clock()
	return m
}
