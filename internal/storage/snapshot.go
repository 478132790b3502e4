package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

const dateKeyTag = "datetime=2006-01-02"

// EncodeProgress serializes the journey state as the blob stored under
// constants.ProgressKey.
func EncodeProgress(state models.ProgressState) (string, error) {
	if state.DailyProgress == nil {
		state.DailyProgress = map[string]models.DailyProgress{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode progress: %w", err)
	}
	return string(data), nil
}

// DecodeProgress parses a stored blob. A blob that is not valid JSON yields an
// empty state along with the error so the caller can log it and carry on.
// Entries with malformed date keys are dropped. A legacy ISO timestamp
// startDate is reduced to its local calendar date in loc.
func DecodeProgress(raw string, loc *time.Location) (models.ProgressState, error) {
	empty := models.ProgressState{DailyProgress: map[string]models.DailyProgress{}}

	var state models.ProgressState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return empty, fmt.Errorf("malformed progress blob: %w", err)
	}
	if state.DailyProgress == nil {
		state.DailyProgress = map[string]models.DailyProgress{}
	}

	state.StartDate = NormalizeStartDate(state.StartDate, loc)

	if err := validate.Struct(state); err != nil {
		sanitize(&state)
	}
	return state, nil
}

// NormalizeStartDate converts a legacy ISO-8601 timestamp (anything containing
// a "T") to the YYYY-MM-DD key of its local calendar date. The 5 AM rule is not
// applied; legacy values already named the start day. Unparseable legacy values
// become "" so the caller re-derives the start date.
func NormalizeStartDate(startDate string, loc *time.Location) string {
	if !strings.Contains(startDate, "T") {
		return startDate
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, startDate); err == nil {
			if layout != time.RFC3339Nano {
				// No offset in the string means it was already local time.
				t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
			}
			return timeslot.FormatDateKey(t.In(loc))
		}
	}
	logger.Warn("Discarding unparseable legacy start date", "startDate", startDate)
	return ""
}

// sanitize drops the fields the validator rejected.
func sanitize(state *models.ProgressState) {
	if state.StartDate != "" {
		if err := validate.Var(state.StartDate, dateKeyTag); err != nil {
			logger.Warn("Discarding invalid start date", "startDate", state.StartDate)
			state.StartDate = ""
		}
	}
	for key := range state.DailyProgress {
		if err := validate.Var(key, dateKeyTag); err != nil {
			logger.Warn("Discarding progress entry with invalid date key", "key", key)
			delete(state.DailyProgress, key)
		}
	}
}
