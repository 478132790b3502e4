package models

// DailyProgress is the completion record for one effective day.
type DailyProgress struct {
	Morning bool `json:"morning"`
	Noon    bool `json:"noon"`
	Night   bool `json:"night"`
}

// Done reports whether the given slot has been completed.
func (p DailyProgress) Done(slot TimeSlot) bool {
	switch slot {
	case SlotMorning:
		return p.Morning
	case SlotNoon:
		return p.Noon
	case SlotNight:
		return p.Night
	}
	return false
}

// Mark returns a copy of p with the slot set. Slots are never unset.
func (p DailyProgress) Mark(slot TimeSlot) DailyProgress {
	switch slot {
	case SlotMorning:
		p.Morning = true
	case SlotNoon:
		p.Noon = true
	case SlotNight:
		p.Night = true
	}
	return p
}

// Completed returns the number of slots done.
func (p DailyProgress) Completed() int {
	n := 0
	for _, slot := range AllSlots {
		if p.Done(slot) {
			n++
		}
	}
	return n
}

// IsComplete reports whether all three slots are done.
func (p DailyProgress) IsComplete() bool {
	return p.Morning && p.Noon && p.Night
}

// ProgressState is the persisted journey state.
type ProgressState struct {
	StartDate      string                   `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DailyProgress  map[string]DailyProgress `json:"dailyProgress" validate:"dive,keys,datetime=2006-01-02,endkeys"`
	StartTimestamp int64                    `json:"startTimestamp,omitempty"`
}

// Clone returns a deep copy of the state.
func (s ProgressState) Clone() ProgressState {
	out := ProgressState{
		StartDate:      s.StartDate,
		StartTimestamp: s.StartTimestamp,
		DailyProgress:  make(map[string]DailyProgress, len(s.DailyProgress)),
	}
	for k, v := range s.DailyProgress {
		out.DailyProgress[k] = v
	}
	return out
}
