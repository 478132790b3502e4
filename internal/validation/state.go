package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// ConflictType represents the type of problem found in stored progress
type ConflictType string

const (
	ConflictMissingStartDate ConflictType = "missing_start_date"
	ConflictInvalidDateKey   ConflictType = "invalid_date_key"
	ConflictBeforeStart      ConflictType = "before_start"
	ConflictFutureEntry      ConflictType = "future_entry"
	ConflictEmptyEntry       ConflictType = "empty_entry"
)

// Conflict represents a single problem in the stored progress
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // YYYY-MM-DD format (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// CheckProgress inspects a stored journey for entries that will be ignored or
// that point at a corrupted clock. None of these stop the app from working.
func CheckProgress(state models.ProgressState, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if state.StartDate == "" {
		if len(state.DailyProgress) > 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingStartDate,
				Description: fmt.Sprintf("%d progress entries exist but no start date is set", len(state.DailyProgress)),
			})
		}
		return result
	}

	start, err := timeslot.ParseDateKey(state.StartDate, now.Location())
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateKey,
			Description: fmt.Sprintf("start date %q is not a valid date key", state.StartDate),
			Date:        state.StartDate,
		})
		return result
	}
	today := timeslot.EffectiveToday(now)

	keys := make([]string, 0, len(state.DailyProgress))
	for key := range state.DailyProgress {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		day, err := timeslot.ParseDateKey(key, now.Location())
		if err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateKey,
				Description: fmt.Sprintf("progress entry %q is not a valid date key", key),
				Date:        key,
			})
			continue
		}
		if day.Before(start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictBeforeStart,
				Description: fmt.Sprintf("progress entry %s predates the start date %s and is ignored", key, state.StartDate),
				Date:        key,
			})
		}
		if day.After(today) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureEntry,
				Description: fmt.Sprintf("progress entry %s is after the current effective day", key),
				Date:        key,
			})
		}
		if state.DailyProgress[key].Completed() == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyEntry,
				Description: fmt.Sprintf("progress entry %s has no completed slots", key),
				Date:        key,
			})
		}
	}

	return result
}
