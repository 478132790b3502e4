package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWriting:
		content = m.viewWriting()
	default:
		content = m.viewDashboard()
	}

	var status string
	if m.errMsg != "" {
		status = dangerStyle.Render(m.errMsg)
	} else if m.message != "" {
		status = warningStyle.Render(m.message)
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Niyyah 369"),
		content,
		status,
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewDashboard() string {
	if !m.tracker.IsStarted() {
		return subtleStyle.Render("Journey not started. Run 'niyyah start'.")
	}

	elapsed := m.tracker.ElapsedDays(m.now)
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d of %d  ·  streak %d\n", timeslot.DisplayDay(elapsed), constants.JourneyLength, m.tracker.TrueStreak(m.now))
	if timeslot.IsJourneyComplete(elapsed) {
		b.WriteString(doneStyle.Render("Journey complete!") + "\n")
	}
	b.WriteString(subtleStyle.Render("Effective day "+timeslot.EffectiveDateKey(m.now)) + "\n\n")

	today, _ := m.tracker.ProgressFor(timeslot.EffectiveDateKey(m.now))
	for _, slot := range models.AllSlots {
		info := timeslot.Info(slot)
		line := fmt.Sprintf("%-17s %-19s %d×", info.Label, info.TimeRange, info.Target)
		switch {
		case today.Done(slot):
			b.WriteString(doneStyle.Render("✓ " + line))
		case timeslot.Status(slot, m.now) == models.SlotStatusActive:
			b.WriteString(activeSlotStyle.Render("▶ " + line))
		case timeslot.Status(slot, m.now) == models.SlotStatusPassed:
			b.WriteString(subtleStyle.Render("✗ " + line))
		default:
			b.WriteString(subtleStyle.Render("· " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewWriting() string {
	s := m.session
	info := timeslot.Info(s.Slot())
	v, seg := s.Check(m.input.Value())

	highlighted := correctStyle.Render(seg.Correct) +
		incorrectStyle.Render(seg.Incorrect) +
		remainingStyle.Render(seg.Remaining)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		activeSlotStyle.Render(info.Label),
		subtleStyle.Render(fmt.Sprintf("Repetition %d of %d", s.Completed()+1, s.Target())),
		affirmationStyle.Render(highlighted),
		m.input.View(),
		subtleStyle.Render(fmt.Sprintf("%d%% written", v.Percent)),
	)
}
