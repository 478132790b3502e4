package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// onboardingText describes the practice shown before a journey begins.
func onboardingText() string {
	desc := fmt.Sprintf("Write your affirmation three times a day for %d days.\n\n", constants.JourneyLength)
	for _, slot := range models.AllSlots {
		info := timeslot.Info(slot)
		desc += fmt.Sprintf("  %-17s %-19s %d times\n", info.Label, info.TimeRange, info.Target)
	}
	desc += "\nDays change over at 5:00 AM."
	return desc
}

// NewOnboardingForm builds the prompt asking whether to begin the journey.
func NewOnboardingForm(start *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to Niyyah 369").
				Description(onboardingText()),
			huh.NewConfirm().
				Title("Begin your journey today?").
				Affirmative("Begin").
				Negative("Not yet").
				Value(start),
		),
	).WithTheme(huh.ThemeDracula())
}

// ConfirmStart runs the onboarding form and reports whether to begin.
func ConfirmStart() (bool, error) {
	var start bool
	if err := NewOnboardingForm(&start).Run(); err != nil {
		return false, err
	}
	return start, nil
}
